package models

import "time"

// MaintenanceType identifies a serviceable item on a car. The string
// values are stable API identifiers, the German display names are what
// the frontend shows and what car-specific interval overrides are keyed
// by.
type MaintenanceType string

// The full set of maintenance types, grouped by assembly.
const (
	// Engine / filters
	TypeOilChange   MaintenanceType = "oil_change"
	TypeAirFilter   MaintenanceType = "air_filter"
	TypeCabinFilter MaintenanceType = "cabin_filter"
	TypeFuelFilter  MaintenanceType = "fuel_filter"

	// Ignition
	TypeSparkPlugs MaintenanceType = "spark_plugs"
	TypeGlowPlugs  MaintenanceType = "glow_plugs"

	// Belts
	TypeTimingBelt  MaintenanceType = "timing_belt"
	TypeVRibbedBelt MaintenanceType = "v_ribbed_belt"

	// Brakes
	TypeBrakePads  MaintenanceType = "brake_pads"
	TypeBrakeDiscs MaintenanceType = "brake_discs"
	TypeBrakeFluid MaintenanceType = "brake_fluid"

	// Fluids
	TypeCoolant         MaintenanceType = "coolant"
	TypeTransmissionOil MaintenanceType = "transmission_oil"
	TypeDifferentialOil MaintenanceType = "differential_oil"

	// Tires / electrical
	TypeTireChange     MaintenanceType = "tire_change"
	TypeBattery        MaintenanceType = "battery"
	TypeWiperBlades    MaintenanceType = "wiper_blades"
	TypeHeadlightBulbs MaintenanceType = "headlight_bulbs"

	// Regulatory
	TypeInspection        MaintenanceType = "inspection"
	TypeGeneralInspection MaintenanceType = "general_inspection"
	TypeFirstAidKit       MaintenanceType = "first_aid_kit"
)

// AllMaintenanceTypes lists every known type in display order.
var AllMaintenanceTypes = []MaintenanceType{
	TypeOilChange, TypeAirFilter, TypeCabinFilter, TypeFuelFilter,
	TypeSparkPlugs, TypeGlowPlugs,
	TypeTimingBelt, TypeVRibbedBelt,
	TypeBrakePads, TypeBrakeDiscs, TypeBrakeFluid,
	TypeCoolant, TypeTransmissionOil, TypeDifferentialOil,
	TypeTireChange, TypeBattery, TypeWiperBlades, TypeHeadlightBulbs,
	TypeInspection, TypeGeneralInspection, TypeFirstAidKit,
}

// DisplayName maps a type to its canonical German display name. Interval
// overrides are joined on these strings, so every new MaintenanceType
// constant must be added here.
func (t MaintenanceType) DisplayName() string {
	switch t {
	case TypeOilChange:
		return "Motoröl + Ölfilter"
	case TypeAirFilter:
		return "Luftfilter"
	case TypeCabinFilter:
		return "Innenraumfilter"
	case TypeFuelFilter:
		return "Kraftstofffilter"
	case TypeSparkPlugs:
		return "Zündkerzen"
	case TypeGlowPlugs:
		return "Glühkerzen"
	case TypeTimingBelt:
		return "Zahnriemen"
	case TypeVRibbedBelt:
		return "Keilrippenriemen"
	case TypeBrakePads:
		return "Bremsbeläge"
	case TypeBrakeDiscs:
		return "Bremsscheiben"
	case TypeBrakeFluid:
		return "Bremsflüssigkeit"
	case TypeCoolant:
		return "Kühlmittel"
	case TypeTransmissionOil:
		return "Getriebeöl"
	case TypeDifferentialOil:
		return "Differentialöl"
	case TypeTireChange:
		return "Reifenwechsel"
	case TypeBattery:
		return "Batterie"
	case TypeWiperBlades:
		return "Scheibenwischerblätter"
	case TypeHeadlightBulbs:
		return "Leuchtmittel"
	case TypeInspection:
		return "Inspektion"
	case TypeGeneralInspection:
		return "Hauptuntersuchung (HU/AU)"
	case TypeFirstAidKit:
		return "Verbandskasten"
	default:
		return ""
	}
}

// Valid reports whether t is one of the known maintenance types.
func (t MaintenanceType) Valid() bool {
	return t.DisplayName() != ""
}

// MaintenanceEntry is one logged maintenance action. Date and mileage are
// both optional: a record may carry either, both, or neither. The interval
// fields are a per-record override and independent of the "done" fields;
// an interval without the matching done value cannot be projected along
// that axis.
type MaintenanceEntry struct {
	ID             int64           // Database identifier
	CarID          int64           // Owning car
	Type           MaintenanceType // What was serviced
	DoneDate       *time.Time      // When it was last performed, optional
	DoneMileage    *int            // Odometer reading at that point in km, optional
	IntervalMonths int             // Record-level time interval override, 0 = none
	IntervalKm     int             // Record-level distance interval override, 0 = none
	CostCents      int             // Cost in euro cents, 0 = not recorded
	Notes          string          // Free-form notes, optional
}

// DummyMaintenanceEntry receives maintenance data from a JSON request.
// The date comes as a 02-01-2006 string so it can be validated and parsed
// by hand.
type DummyMaintenanceEntry struct {
	Type           string `json:"type" validate:"required"`
	DoneDate       string `json:"done_date" validate:"omitempty,datetime=02-01-2006"`
	DoneMileage    *int   `json:"done_mileage" validate:"omitempty,gte=0"`
	IntervalMonths int    `json:"interval_months" validate:"omitempty,gt=0"`
	IntervalKm     int    `json:"interval_km" validate:"omitempty,gt=0"`
	CostCents      int    `json:"cost_cents" validate:"omitempty,gte=0"`
	Notes          string `json:"notes" validate:"omitempty,max=2000"`
}
