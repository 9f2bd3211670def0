package models

import "time"

// CostEntry is a miscellaneous cost event that is neither fuel nor
// maintenance: insurance, tax, parking, a wash, a fine.
type CostEntry struct {
	ID          int64     // Database identifier
	CarID       int64     // Owning car
	Date        time.Time // Day the cost occurred
	Category    string    // Free-form category ("insurance", "tax", ...)
	AmountCents int       // Amount in euro cents
	Notes       string    // Free-form notes, optional
}

// DummyCostEntry receives cost data from a JSON request.
type DummyCostEntry struct {
	Date        string `json:"date" validate:"required,datetime=02-01-2006"`
	Category    string `json:"category" validate:"required,max=100"`
	AmountCents int    `json:"amount_cents" validate:"required,gt=0"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}
