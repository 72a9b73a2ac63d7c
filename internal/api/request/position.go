package request

// CreatePositionRequest represents the request body for creating a share lot.
type CreatePositionRequest struct {
	Ticker          string  `json:"ticker"`
	Shares          int     `json:"shares"`
	CostBasis       float64 `json:"costBasis"`
	AcquiredDate    string  `json:"acquiredDate"`
	AcquisitionType string  `json:"acquisitionType"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdatePositionRequest represents a free-form field patch for corrections.
type UpdatePositionRequest struct {
	Ticker          *string  `json:"ticker,omitempty"`
	Shares          *int     `json:"shares,omitempty"`
	CostBasis       *float64 `json:"costBasis,omitempty"`
	AcquiredDate    *string  `json:"acquiredDate,omitempty"`
	SoldDate        *string  `json:"soldDate,omitempty"`
	SoldPrice       *float64 `json:"soldPrice,omitempty"`
	Status          *string  `json:"status,omitempty"`
	AcquisitionType *string  `json:"acquisitionType,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// SellPositionRequest sells an open share lot. soldDate is optional and
// defaults to the current time.
type SellPositionRequest struct {
	SoldPrice *float64 `json:"soldPrice"`
	SoldDate  *string  `json:"soldDate,omitempty"`
}
