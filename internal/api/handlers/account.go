package handlers

import (
	"errors"
	"net/http"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/response"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/service"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/validation"
)

// AccountHandler handles HTTP requests for the singleton account settings.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// GetSettings handles GET requests for the account capital settings.
//
// Endpoint: GET /api/account
// Response: 200 OK with AccountSettings
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.accountService.GetSettings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT requests to overwrite the account capital figures.
//
// Endpoint: PUT /api/account
// Request Body: UpdateAccountRequest (totalCapital, cashAvailable)
// Response: 200 OK with updated AccountSettings
// Error: 400 Bad Request if validation fails or an amount is negative
// Error: 500 Internal Server Error if the update fails
func (h *AccountHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	settings, err := h.accountService.UpdateSettings(r.Context(), *req.TotalCapital, *req.CashAvailable)
	if err != nil {
		if errors.Is(err, apperrors.ErrNegativeAmount) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNegativeAmount.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// Deposit handles POST requests to add cash to the account. The amount is
// added to both total capital and cash available.
//
// Endpoint: POST /api/account/deposit
// Request Body: AdjustCashRequest (amount)
// Response: 200 OK with updated AccountSettings
// Error: 400 Bad Request if validation fails or the amount is negative
// Error: 500 Internal Server Error if the deposit fails
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AdjustCashRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAdjustCash(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	settings, err := h.accountService.Deposit(r.Context(), *req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNegativeAmount) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNegativeAmount.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// Withdraw handles POST requests to remove cash from the account. The
// withdrawal is rejected when it exceeds the cash currently available.
//
// Endpoint: POST /api/account/withdraw
// Request Body: AdjustCashRequest (amount)
// Response: 200 OK with updated AccountSettings
// Error: 400 Bad Request if validation fails or the amount is negative
// Error: 409 Conflict if the withdrawal exceeds available cash
// Error: 500 Internal Server Error if the withdrawal fails
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AdjustCashRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAdjustCash(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	settings, err := h.accountService.Withdraw(r.Context(), *req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNegativeAmount):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNegativeAmount.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInsufficientCash):
			response.RespondError(w, http.StatusConflict, apperrors.ErrInsufficientCash.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateAccount.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}
