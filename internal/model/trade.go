package model

import "time"

// Option types
const (
	OptionTypePut  = "PUT"
	OptionTypeCall = "CALL"
)

// Opening actions
const (
	ActionSellToOpen  = "SELL_TO_OPEN"
	ActionBuyToOpen   = "BUY_TO_OPEN"
	ActionSellToClose = "SELL_TO_CLOSE"
	ActionBuyToClose  = "BUY_TO_CLOSE"
)

// Trade statuses. OPEN is the only non-terminal status; the other four are
// absorbing.
const (
	TradeStatusOpen     = "OPEN"
	TradeStatusClosed   = "CLOSED"
	TradeStatusAssigned = "ASSIGNED"
	TradeStatusExpired  = "EXPIRED"
	TradeStatusRolled   = "ROLLED"
)

// Close methods
const (
	CloseMethodBuyback  = "BUYBACK"
	CloseMethodRoll     = "ROLL"
	CloseMethodExpired  = "EXPIRED"
	CloseMethodAssigned = "ASSIGNED"
)

// SharesPerContract is the number of underlying shares one option contract
// controls. Premium is stored per share, so every dollar figure derived from
// a trade multiplies by quantity and this factor.
const SharesPerContract = 100

// Trade represents a single option contract position: one strike, one
// expiration, one type, opened by one action.
type Trade struct {
	ID                string     `json:"id"`
	Ticker            string     `json:"ticker"`
	Type              string     `json:"type"`
	Action            string     `json:"action"`
	Strike            float64    `json:"strike"`
	Expiration        time.Time  `json:"expiration"`
	Premium           float64    `json:"premium"`
	Quantity          int        `json:"quantity"`
	OpenDate          time.Time  `json:"openDate"`
	CloseDate         *time.Time `json:"closeDate,omitempty"`
	ClosePremium      *float64   `json:"closePremium,omitempty"`
	CloseMethod       *string    `json:"closeMethod,omitempty"`
	Status            string     `json:"status"`
	Notes             *string    `json:"notes,omitempty"`
	PositionID        *string    `json:"positionId,omitempty"`
	RolledToTradeID   *string    `json:"rolledToTradeId,omitempty"`
	RolledFromTradeID *string    `json:"rolledFromTradeId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// CollectedPremium returns the total premium received when the trade was
// opened: premium per share x quantity x 100 shares per contract.
func (t Trade) CollectedPremium() float64 {
	return t.Premium * float64(t.Quantity) * SharesPerContract
}

// PaidPremium returns the total premium paid to close the trade, or 0 if no
// close premium has been recorded.
func (t Trade) PaidPremium() float64 {
	if t.ClosePremium == nil {
		return 0
	}
	return *t.ClosePremium * float64(t.Quantity) * SharesPerContract
}

// NetPremium returns collected minus paid premium. This convention is applied
// uniformly to every trade regardless of option type or action.
func (t Trade) NetPremium() float64 {
	return t.CollectedPremium() - t.PaidPremium()
}

// TradeFilter for querying trades
type TradeFilter struct {
	Ticker string
	Status string
}
