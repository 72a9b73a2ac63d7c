package validation

import (
	"fmt"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
)

// ValidatePriceUpsert validates a price snapshot update. Only ticker is
// required; everything else is a partial field that merges into the stored
// snapshot.
func ValidatePriceUpsert(req request.UpsertPriceRequest) error {
	errors := make(map[string]string)

	validTicker(errors, req.Ticker)

	if req.StockPrice != nil && *req.StockPrice < 0.0 {
		errors["stockPrice"] = "stockPrice cannot be negative"
	}
	if req.OptionPrice != nil && *req.OptionPrice < 0.0 {
		errors["optionPrice"] = "optionPrice cannot be negative"
	}
	if req.Strike != nil && *req.Strike <= 0.0 {
		errors["strike"] = "strike must be positive"
	}
	if req.Expiration != nil {
		validDate(errors, "expiration", *req.Expiration)
	}
	if req.OptionType != nil && !ValidOptionType[*req.OptionType] {
		errors["optionType"] = fmt.Sprintf("invalid optionType: %s", *req.OptionType)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateBulkPriceUpsert validates every entry of a bulk price update.
func ValidateBulkPriceUpsert(req request.BulkUpsertPriceRequest) error {
	errors := make(map[string]string)

	if len(req.Prices) == 0 {
		errors["prices"] = "prices must be a non-empty array"
	}
	for i, p := range req.Prices {
		if err := ValidatePriceUpsert(p); err != nil {
			errors[fmt.Sprintf("prices[%d]", i)] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
