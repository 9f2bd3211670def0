package models

import "time"

// RefuelingEntry is one logged fill-up. PriceCents is the total amount
// paid; the price per liter is always derived as price/liters and never
// stored separately.
type RefuelingEntry struct {
	ID         int64     // Database identifier
	CarID      int64     // Owning car
	Date       time.Time // Day of the fill-up
	Mileage    int       // Odometer reading in km
	Liters     float64   // Amount of fuel
	PriceCents int       // Total price paid in euro cents
	Partial    bool      // True if the tank was not filled completely
}

// DummyRefuelingEntry receives refueling data from a JSON request.
type DummyRefuelingEntry struct {
	Date       string  `json:"date" validate:"required,datetime=02-01-2006"`
	Mileage    int     `json:"mileage" validate:"required,gte=0"`
	Liters     float64 `json:"liters" validate:"required,gt=0"`
	PriceCents int     `json:"price_cents" validate:"required,gt=0"`
	Partial    bool    `json:"partial"`
}
