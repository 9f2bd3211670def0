// Package schedule contains the maintenance scheduling core: interval
// resolution, odometer aggregation, due-date/due-mileage projection,
// status classification and the human-readable remaining-time rendering.
//
// Every function in this package is pure. "Now" and the current odometer
// estimate are explicit parameters, never read from ambient state, so the
// whole package is deterministic and trivially testable. All canonical
// distances are kilometers; miles exist only at the display boundary.
package schedule

import "github.com/pistonary/pistonary/internal/models"

// IntervalRule is a recurrence policy for one maintenance type. A zero
// value on an axis means the axis does not apply; the zero rule as a
// whole means "never due".
type IntervalRule struct {
	Months     int `json:"months,omitempty"`
	Kilometers int `json:"kilometers,omitempty"`
}

// IsZero reports whether neither axis is populated.
func (r IntervalRule) IsZero() bool {
	return r.Months == 0 && r.Kilometers == 0
}

// defaultIntervals holds the built-in recurrence rule per maintenance
// type. Types without an entry (headlight bulbs: bulbs die, they do not
// age on a schedule) resolve to the zero rule and are never due.
var defaultIntervals = map[models.MaintenanceType]IntervalRule{
	models.TypeOilChange:   {Months: 12, Kilometers: 15000},
	models.TypeAirFilter:   {Months: 24, Kilometers: 30000},
	models.TypeCabinFilter: {Months: 12, Kilometers: 15000},
	models.TypeFuelFilter:  {Months: 36, Kilometers: 60000},

	models.TypeSparkPlugs: {Months: 48, Kilometers: 60000},
	models.TypeGlowPlugs:  {Kilometers: 90000},

	models.TypeTimingBelt:  {Months: 72, Kilometers: 120000},
	models.TypeVRibbedBelt: {Months: 48, Kilometers: 80000},

	models.TypeBrakePads:  {Kilometers: 40000},
	models.TypeBrakeDiscs: {Kilometers: 80000},
	models.TypeBrakeFluid: {Months: 24},

	models.TypeCoolant:         {Months: 60},
	models.TypeTransmissionOil: {Months: 72, Kilometers: 100000},
	models.TypeDifferentialOil: {Kilometers: 100000},

	models.TypeTireChange:  {Months: 6},
	models.TypeBattery:     {Months: 60},
	models.TypeWiperBlades: {Months: 12},

	models.TypeInspection:        {Months: 12, Kilometers: 15000},
	models.TypeGeneralInspection: {Months: 24},
	models.TypeFirstAidKit:       {Months: 60},
}

// DefaultInterval returns the built-in rule for a maintenance type, or
// the zero rule if the type has no default.
func DefaultInterval(t models.MaintenanceType) IntervalRule {
	return defaultIntervals[t]
}

// ResolveInterval determines the recurrence rule that applies to a
// maintenance type on a specific car. An active car override whose name
// matches the type's display name wins over the built-in default. Unknown
// types resolve to the zero rule; resolution never fails.
func ResolveInterval(t models.MaintenanceType, overrides []models.IntervalOverride) IntervalRule {
	name := t.DisplayName()
	for _, o := range overrides {
		if !o.IsActive || o.Name != name || name == "" {
			continue
		}
		var rule IntervalRule
		if o.TimeInterval != nil {
			rule.Months = *o.TimeInterval
		}
		if o.MileageInterval != nil {
			rule.Kilometers = *o.MileageInterval
		}
		return rule
	}
	return defaultIntervals[t]
}

// EffectiveRule merges the interval fields stored on a record itself into
// a resolved rule. A record-level interval is the most specific source
// and wins per axis.
func EffectiveRule(entry models.MaintenanceEntry, resolved IntervalRule) IntervalRule {
	rule := resolved
	if entry.IntervalMonths > 0 {
		rule.Months = entry.IntervalMonths
	}
	if entry.IntervalKm > 0 {
		rule.Kilometers = entry.IntervalKm
	}
	return rule
}
