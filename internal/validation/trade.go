package validation

import (
	"fmt"
	"strings"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
)

// ValidOptionType contains the allowed option type values.
var ValidOptionType = map[string]bool{
	model.OptionTypePut: true, model.OptionTypeCall: true,
}

// ValidTradeAction contains the allowed opening action values.
var ValidTradeAction = map[string]bool{
	model.ActionSellToOpen: true, model.ActionBuyToOpen: true,
	model.ActionSellToClose: true, model.ActionBuyToClose: true,
}

// ValidTradeStatus contains the allowed trade status values.
var ValidTradeStatus = map[string]bool{
	model.TradeStatusOpen: true, model.TradeStatusClosed: true,
	model.TradeStatusAssigned: true, model.TradeStatusExpired: true,
	model.TradeStatusRolled: true,
}

// ValidCloseMethod contains the allowed close method values.
var ValidCloseMethod = map[string]bool{
	model.CloseMethodBuyback: true, model.CloseMethodRoll: true,
	model.CloseMethodExpired: true, model.CloseMethodAssigned: true,
}

// ValidateCreateTrade validates a trade creation request.
//
// Required fields:
//   - ticker: non-empty, at most 10 characters
//   - type: PUT or CALL
//   - action: one of the four opening actions
//   - strike: strictly positive
//   - expiration: YYYY-MM-DD
//   - quantity: at least 1 contract
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	errors := make(map[string]string)

	validTicker(errors, req.Ticker)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidOptionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.Action) == "" {
		errors["action"] = "action is required"
	} else if !ValidTradeAction[req.Action] {
		errors["action"] = fmt.Sprintf("invalid action: %s", req.Action)
	}

	if req.Strike <= 0.0 {
		errors["strike"] = "strike must be positive"
	}

	validDate(errors, "expiration", req.Expiration)

	if req.Quantity < 1 {
		errors["quantity"] = "quantity must be at least 1"
	}

	if req.OpenDate != nil {
		validDate(errors, "openDate", *req.OpenDate)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTrade validates a trade update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTrade(req request.UpdateTradeRequest) error {
	errors := make(map[string]string)

	if req.Ticker != nil {
		validTicker(errors, *req.Ticker)
	}
	if req.Type != nil && !ValidOptionType[*req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
	}
	if req.Action != nil && !ValidTradeAction[*req.Action] {
		errors["action"] = fmt.Sprintf("invalid action: %s", *req.Action)
	}
	if req.Strike != nil && *req.Strike <= 0.0 {
		errors["strike"] = "strike must be positive"
	}
	if req.Expiration != nil {
		validDate(errors, "expiration", *req.Expiration)
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		errors["quantity"] = "quantity must be at least 1"
	}
	if req.OpenDate != nil {
		validDate(errors, "openDate", *req.OpenDate)
	}
	if req.CloseDate != nil {
		validDate(errors, "closeDate", *req.CloseDate)
	}
	if req.Status != nil && !ValidTradeStatus[*req.Status] {
		errors["status"] = fmt.Sprintf("invalid status: %s", *req.Status)
	}
	if req.CloseMethod != nil && !ValidCloseMethod[*req.CloseMethod] {
		errors["closeMethod"] = fmt.Sprintf("invalid close method: %s", *req.CloseMethod)
	}
	if req.PositionID != nil {
		if err := ValidateUUID(*req.PositionID); err != nil {
			errors["positionId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCloseTrade validates a buyback close request.
func ValidateCloseTrade(req request.CloseTradeRequest) error {
	errors := make(map[string]string)

	if req.ClosePremium == nil {
		errors["closePremium"] = "closePremium is required"
	} else if *req.ClosePremium < 0.0 {
		errors["closePremium"] = "closePremium cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCloseTradeWithMethod validates a generalized close request.
// The companion field for the chosen method is checked by the service; here
// only the shape is validated.
func ValidateCloseTradeWithMethod(req request.CloseTradeWithMethodRequest) error {
	errors := make(map[string]string)

	switch req.Method {
	case model.CloseMethodBuyback, model.CloseMethodExpired, model.CloseMethodAssigned:
	case "":
		errors["method"] = "method is required"
	default:
		errors["method"] = fmt.Sprintf("invalid method: %s", req.Method)
	}

	if req.ClosePremium != nil && *req.ClosePremium < 0.0 {
		errors["closePremium"] = "closePremium cannot be negative"
	}
	if req.PositionID != nil {
		if err := ValidateUUID(*req.PositionID); err != nil {
			errors["positionId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateRollTrade validates a roll request; the replacement trade must pass
// the same checks as a fresh creation.
func ValidateRollTrade(req request.RollTradeRequest) error {
	return ValidateCreateTrade(req.NewTrade)
}

// ValidateAssignTrade validates an assignment request.
func ValidateAssignTrade(req request.AssignTradeRequest) error {
	if strings.TrimSpace(req.PositionID) == "" {
		return &Error{Fields: map[string]string{"positionId": "positionId is required"}}
	}
	return ValidateUUID(req.PositionID)
}
