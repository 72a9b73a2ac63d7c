package validation

import (
	"fmt"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
)

// ValidAcquisitionType contains the allowed acquisition type values.
var ValidAcquisitionType = map[string]bool{
	model.AcquisitionAssignedPut: true, model.AcquisitionAssignedCall: true,
	model.AcquisitionDirectPurchase: true,
}

// ValidPositionStatus contains the allowed position status values.
var ValidPositionStatus = map[string]bool{
	model.PositionStatusOpen: true, model.PositionStatusSold: true,
}

// ValidateCreatePosition validates a position creation request.
//
// Required fields:
//   - ticker: non-empty, at most 10 characters
//   - shares: positive multiple of 100
//   - costBasis: non-negative
//   - acquiredDate: YYYY-MM-DD
//   - acquisitionType: ASSIGNED_PUT, ASSIGNED_CALL or DIRECT_PURCHASE
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := make(map[string]string)

	validTicker(errors, req.Ticker)
	validShares(errors, req.Shares)

	if req.CostBasis < 0.0 {
		errors["costBasis"] = "costBasis cannot be negative"
	}

	validDate(errors, "acquiredDate", req.AcquiredDate)

	if req.AcquisitionType == "" {
		errors["acquisitionType"] = "acquisitionType is required"
	} else if !ValidAcquisitionType[req.AcquisitionType] {
		errors["acquisitionType"] = fmt.Sprintf("invalid acquisitionType: %s", req.AcquisitionType)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdatePosition validates a position update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdatePosition(req request.UpdatePositionRequest) error {
	errors := make(map[string]string)

	if req.Ticker != nil {
		validTicker(errors, *req.Ticker)
	}
	if req.Shares != nil {
		validShares(errors, *req.Shares)
	}
	if req.CostBasis != nil && *req.CostBasis < 0.0 {
		errors["costBasis"] = "costBasis cannot be negative"
	}
	if req.AcquiredDate != nil {
		validDate(errors, "acquiredDate", *req.AcquiredDate)
	}
	if req.SoldDate != nil {
		validDate(errors, "soldDate", *req.SoldDate)
	}
	if req.SoldPrice != nil && *req.SoldPrice < 0.0 {
		errors["soldPrice"] = "soldPrice cannot be negative"
	}
	if req.Status != nil && !ValidPositionStatus[*req.Status] {
		errors["status"] = fmt.Sprintf("invalid status: %s", *req.Status)
	}
	if req.AcquisitionType != nil && !ValidAcquisitionType[*req.AcquisitionType] {
		errors["acquisitionType"] = fmt.Sprintf("invalid acquisitionType: %s", *req.AcquisitionType)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSellPosition validates a sell request.
func ValidateSellPosition(req request.SellPositionRequest) error {
	errors := make(map[string]string)

	if req.SoldPrice == nil {
		errors["soldPrice"] = "soldPrice is required"
	} else if *req.SoldPrice < 0.0 {
		errors["soldPrice"] = "soldPrice cannot be negative"
	}
	if req.SoldDate != nil {
		validDate(errors, "soldDate", *req.SoldDate)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// validShares checks the share count, recording a field error unless it is a
// positive multiple of 100.
func validShares(errors map[string]string, shares int) {
	if shares <= 0 {
		errors["shares"] = "shares must be positive"
	} else if shares%100 != 0 {
		errors["shares"] = "shares must be a multiple of 100"
	}
}
