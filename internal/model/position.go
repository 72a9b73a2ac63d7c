package model

import "time"

// Position statuses
const (
	PositionStatusOpen = "OPEN"
	PositionStatusSold = "SOLD"
)

// Acquisition types
const (
	AcquisitionAssignedPut    = "ASSIGNED_PUT"
	AcquisitionAssignedCall   = "ASSIGNED_CALL"
	AcquisitionDirectPurchase = "DIRECT_PURCHASE"
)

// Position represents a lot of underlying shares, always a multiple of 100,
// acquired through assignment or direct purchase.
type Position struct {
	ID              string     `json:"id"`
	Ticker          string     `json:"ticker"`
	Shares          int        `json:"shares"`
	CostBasis       float64    `json:"costBasis"`
	AcquiredDate    time.Time  `json:"acquiredDate"`
	SoldDate        *time.Time `json:"soldDate,omitempty"`
	SoldPrice       *float64   `json:"soldPrice,omitempty"`
	Status          string     `json:"status"`
	AcquisitionType string     `json:"acquisitionType"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PositionFilter for querying positions
type PositionFilter struct {
	Ticker string
	Status string
}
