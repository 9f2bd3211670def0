package schedule

import "github.com/pistonary/pistonary/internal/models"

// CurrentMileage estimates the car's current odometer reading as the
// maximum mileage logged across maintenance and refueling entries. There
// is no authoritative odometer field anywhere; the highest logged value
// is the best available estimate of "now". Returns 0 when no entry
// carries a mileage at all. A value entered below an earlier one is
// swallowed by the max, monotonicity is not validated.
func CurrentMileage(maintenance []models.MaintenanceEntry, refuelings []models.RefuelingEntry) int {
	max := 0
	for _, m := range maintenance {
		if m.DoneMileage != nil && *m.DoneMileage > max {
			max = *m.DoneMileage
		}
	}
	for _, r := range refuelings {
		if r.Mileage > max {
			max = r.Mileage
		}
	}
	return max
}
