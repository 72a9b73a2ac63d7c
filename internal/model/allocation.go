package model

// CallAllocation reports, for one ticker, how many of the currently held open
// shares are already pledged as collateral for open covered calls versus free
// to cover a new call. Lots are shares divided by 100; fractional lots are
// possible in the aggregate even though each position is a clean multiple.
type CallAllocation struct {
	Ticker            string  `json:"ticker"`
	TotalShares       int     `json:"totalShares"`
	AllocatedShares   int     `json:"allocatedShares"`
	UnallocatedShares int     `json:"unallocatedShares"`
	TotalLots         float64 `json:"totalLots"`
	AllocatedLots     float64 `json:"allocatedLots"`
	UnallocatedLots   float64 `json:"unallocatedLots"`
}
