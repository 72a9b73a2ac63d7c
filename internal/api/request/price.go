package request

// UpsertPriceRequest updates the price snapshot for a ticker. Absent fields
// keep the previously stored value.
type UpsertPriceRequest struct {
	Ticker      string   `json:"ticker"`
	StockPrice  *float64 `json:"stockPrice,omitempty"`
	OptionPrice *float64 `json:"optionPrice,omitempty"`
	Strike      *float64 `json:"strike,omitempty"`
	Expiration  *string  `json:"expiration,omitempty"`
	OptionType  *string  `json:"optionType,omitempty"`
}

// BulkUpsertPriceRequest updates several tickers in one call.
type BulkUpsertPriceRequest struct {
	Prices []UpsertPriceRequest `json:"prices"`
}
