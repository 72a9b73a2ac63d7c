package request

// UpdateAccountRequest overwrites both capital figures. Both fields are
// required; pointers distinguish an absent field from an explicit zero.
type UpdateAccountRequest struct {
	TotalCapital  *float64 `json:"totalCapital"`
	CashAvailable *float64 `json:"cashAvailable"`
}

// AdjustCashRequest deposits into or withdraws from the account.
type AdjustCashRequest struct {
	Amount *float64 `json:"amount"`
}
