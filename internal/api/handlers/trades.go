package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/response"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/service"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/validation"
)

// TradeHandler handles HTTP requests for trade endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// lifecycle decisions to the tradeService.
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// AllTrades handles GET requests to retrieve trades, optionally filtered by
// ticker.
//
// Endpoint: GET /api/trade?ticker=AAPL
// Response: 200 OK with array of Trade, newest open date first
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) AllTrades(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")

	trades, err := h.tradeService.GetTrades(ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// GetTrade handles GET requests to retrieve a single trade by ID.
//
// Endpoint: GET /api/trade/{uuid}
// Response: 200 OK with Trade
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if trade not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	trade, err := h.tradeService.GetTrade(tradeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrade.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// CreateTrade handles POST requests to record a new option trade.
//
// Endpoint: POST /api/trade
// Request Body: CreateTradeRequest
// Response: 201 Created with Trade (status OPEN)
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.CreateTrade(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, trade)
}

// UpdateTrade handles PUT requests to patch trade fields for corrections.
// The lifecycle state machine is not enforced here by design.
//
// Endpoint: PUT /api/trade/{uuid}
// Request Body: UpdateTradeRequest (all fields optional)
// Response: 200 OK with updated Trade
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if trade not found
// Error: 500 Internal Server Error if update fails
func (h *TradeHandler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.UpdateTrade(r.Context(), tradeID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// DeleteTrade handles DELETE requests to remove a trade. A hard delete with
// no cascade.
//
// Endpoint: DELETE /api/trade/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if trade not found
// Error: 500 Internal Server Error if deletion fails
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	if err := h.tradeService.DeleteTrade(r.Context(), tradeID); err != nil {
		if errors.Is(err, apperrors.ErrTradeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete trade", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// CloseTrade handles POST requests to close an open trade by buyback.
//
// Endpoint: POST /api/trade/{uuid}/close
// Request Body: CloseTradeRequest (closePremium)
// Response: 200 OK with the CLOSED Trade
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if trade not found
// Error: 409 Conflict if the trade is no longer open
// Error: 500 Internal Server Error if the close fails
func (h *TradeHandler) CloseTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CloseTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCloseTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.CloseTrade(r.Context(), tradeID, *req.ClosePremium)
	if err != nil {
		respondTradeLifecycleError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// CloseTradeWithMethod handles POST requests to close an open trade by
// buyback, expiration or assignment.
//
// Endpoint: POST /api/trade/{uuid}/close-with-method
// Request Body: CloseTradeWithMethodRequest (method, closePremium?, positionId?)
// Response: 200 OK with the closed Trade
// Error: 400 Bad Request if validation fails or a companion field is missing
// Error: 404 Not Found if trade or referenced position not found
// Error: 409 Conflict if the trade is no longer open
// Error: 500 Internal Server Error if the close fails
func (h *TradeHandler) CloseTradeWithMethod(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CloseTradeWithMethodRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCloseTradeWithMethod(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.CloseTradeWithMethod(r.Context(), tradeID, req.Method, req.ClosePremium, req.PositionID)
	if err != nil {
		respondTradeLifecycleError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// RollTrade handles POST requests to roll an open trade into a replacement.
//
// Endpoint: POST /api/trade/{uuid}/roll
// Request Body: RollTradeRequest (newTrade)
// Response: 201 Created with the new OPEN Trade, linked both ways
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the old trade not found
// Error: 409 Conflict if the old trade is no longer open
// Error: 500 Internal Server Error if the roll fails
func (h *TradeHandler) RollTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.RollTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRollTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.RollTrade(r.Context(), tradeID, req.NewTrade)
	if err != nil {
		respondTradeLifecycleError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, trade)
}

// AssignTrade handles POST requests to mark an open trade assigned, linking
// an existing position. The position record is created separately by the
// caller.
//
// Endpoint: POST /api/trade/{uuid}/assign
// Request Body: AssignTradeRequest (positionId)
// Response: 200 OK with the ASSIGNED Trade
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if trade or position not found
// Error: 409 Conflict if the trade is no longer open
// Error: 500 Internal Server Error if the assignment fails
func (h *TradeHandler) AssignTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AssignTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAssignTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.AssignTrade(r.Context(), tradeID, req.PositionID)
	if err != nil {
		respondTradeLifecycleError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// respondTradeLifecycleError translates trade lifecycle failures into HTTP
// statuses: missing entities to 404, state violations to 409, missing
// companion fields to 400, everything else to 500.
func respondTradeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTradeNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrPositionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTradeNotOpen):
		response.RespondError(w, http.StatusConflict, apperrors.ErrTradeNotOpen.Error(), err.Error())
	case errors.Is(err, apperrors.ErrMissingClosePremium),
		errors.Is(err, apperrors.ErrMissingPositionID),
		errors.Is(err, apperrors.ErrInvalidCloseMethod):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "failed to update trade", err.Error())
	}
}
