package models

// Car is a single vehicle in a user's logbook. All logbook entries hang
// off a car and are removed together with it.
type Car struct {
	ID           int64  // Database identifier
	Username     string // Owning user
	Name         string // Display name chosen by the user ("Daily driver")
	Make         string // Manufacturer
	Model        string // Model designation
	LicensePlate string // Registration plate, optional
	FirstRegYear int    // Year of first registration, optional (0 = unknown)
	Notes        string // Free-form notes, optional
}

// DummyCar receives car data from a JSON request before it is converted
// into a Car.
type DummyCar struct {
	Name         string `json:"name" validate:"required,max=100"`
	Make         string `json:"make" validate:"required,max=100"`
	Model        string `json:"model" validate:"required,max=100"`
	LicensePlate string `json:"license_plate" validate:"omitempty,max=20"`
	FirstRegYear int    `json:"first_reg_year" validate:"omitempty,gte=1900,lte=2100"`
	Notes        string `json:"notes" validate:"omitempty,max=2000"`
}
