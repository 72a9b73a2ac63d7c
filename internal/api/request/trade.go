package request

// CreateTradeRequest represents the request body for creating a trade.
// openDate is optional and defaults to the current time.
type CreateTradeRequest struct {
	Ticker     string  `json:"ticker"`
	Type       string  `json:"type"`
	Action     string  `json:"action"`
	Strike     float64 `json:"strike"`
	Expiration string  `json:"expiration"`
	Premium    float64 `json:"premium"`
	Quantity   int     `json:"quantity"`
	OpenDate   *string `json:"openDate,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// UpdateTradeRequest represents a free-form field patch for corrections. It
// deliberately does not enforce the lifecycle state machine.
type UpdateTradeRequest struct {
	Ticker            *string  `json:"ticker,omitempty"`
	Type              *string  `json:"type,omitempty"`
	Action            *string  `json:"action,omitempty"`
	Strike            *float64 `json:"strike,omitempty"`
	Expiration        *string  `json:"expiration,omitempty"`
	Premium           *float64 `json:"premium,omitempty"`
	Quantity          *int     `json:"quantity,omitempty"`
	OpenDate          *string  `json:"openDate,omitempty"`
	CloseDate         *string  `json:"closeDate,omitempty"`
	ClosePremium      *float64 `json:"closePremium,omitempty"`
	CloseMethod       *string  `json:"closeMethod,omitempty"`
	Status            *string  `json:"status,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	PositionID        *string  `json:"positionId,omitempty"`
	RolledToTradeID   *string  `json:"rolledToTradeId,omitempty"`
	RolledFromTradeID *string  `json:"rolledFromTradeId,omitempty"`
}

// CloseTradeRequest closes an open trade by buying it back.
type CloseTradeRequest struct {
	ClosePremium *float64 `json:"closePremium"`
}

// CloseTradeWithMethodRequest generalizes close. BUYBACK requires
// closePremium, ASSIGNED requires positionId, EXPIRED requires neither.
type CloseTradeWithMethodRequest struct {
	Method       string   `json:"method"`
	ClosePremium *float64 `json:"closePremium,omitempty"`
	PositionID   *string  `json:"positionId,omitempty"`
}

// RollTradeRequest carries the replacement trade for a roll. The old trade is
// addressed in the URL.
type RollTradeRequest struct {
	NewTrade CreateTradeRequest `json:"newTrade"`
}

// AssignTradeRequest marks an open trade assigned, linking the share lot the
// caller created for the assignment.
type AssignTradeRequest struct {
	PositionID string `json:"positionId"`
}
