package validation

import (
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
)

// ValidateUpdateAccount validates the account settings update request. Both
// figures are required and non-negative. cashAvailable <= totalCapital is a
// UI-enforced convention, not checked here.
func ValidateUpdateAccount(req request.UpdateAccountRequest) error {
	errors := make(map[string]string)

	if req.TotalCapital == nil {
		errors["totalCapital"] = "totalCapital is required"
	} else if *req.TotalCapital < 0.0 {
		errors["totalCapital"] = "totalCapital cannot be negative"
	}

	if req.CashAvailable == nil {
		errors["cashAvailable"] = "cashAvailable is required"
	} else if *req.CashAvailable < 0.0 {
		errors["cashAvailable"] = "cashAvailable cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateAdjustCash validates a deposit or withdrawal request.
func ValidateAdjustCash(req request.AdjustCashRequest) error {
	errors := make(map[string]string)

	if req.Amount == nil {
		errors["amount"] = "amount is required"
	} else if *req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
