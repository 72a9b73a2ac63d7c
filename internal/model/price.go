package model

import "time"

// CurrentPrice is a manually refreshed per-ticker market snapshot. There is
// no price history; each upsert overwrites the row in place, preserving any
// field the update does not supply.
type CurrentPrice struct {
	Ticker     string     `json:"ticker"`
	StockPrice *float64   `json:"stockPrice,omitempty"`
	OptionPrice *float64  `json:"optionPrice,omitempty"`
	Strike     *float64   `json:"strike,omitempty"`
	Expiration *time.Time `json:"expiration,omitempty"`
	OptionType *string    `json:"optionType,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
