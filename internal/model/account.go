package model

import "time"

// AccountSettings is the singleton record tracking trading capital. It exists
// from database initialization and is never created or destroyed through the
// API, only mutated.
type AccountSettings struct {
	ID            string    `json:"id"`
	TotalCapital  float64   `json:"totalCapital"`
	CashAvailable float64   `json:"cashAvailable"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
