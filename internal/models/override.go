package models

// IntervalOverride is a car-specific recurrence rule. Overrides are keyed
// by the German display name of the maintenance type (that is what the
// frontend sends); only active rows take part in interval resolution.
// A nil interval means "no threshold on this axis".
type IntervalOverride struct {
	ID              int64  // Database identifier
	CarID           int64  // Owning car
	Name            string // Display name of the maintenance type
	TimeInterval    *int   // Months between services, nil = none
	MileageInterval *int   // Kilometers between services, nil = none
	IsActive        bool   // Inactive overrides are ignored
}

// DummyIntervalOverride receives one override row from a JSON request.
type DummyIntervalOverride struct {
	Name            string `json:"name" validate:"required,max=100"`
	TimeInterval    *int   `json:"time_interval" validate:"omitempty,gt=0"`
	MileageInterval *int   `json:"mileage_interval" validate:"omitempty,gt=0"`
	IsActive        bool   `json:"is_active"`
}
