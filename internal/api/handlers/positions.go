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

// PositionHandler handles HTTP requests for share lot endpoints.
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler with the provided service dependency.
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// AllPositions handles GET requests to retrieve positions, optionally
// filtered by ticker and status.
//
// Endpoint: GET /api/position?ticker=AAPL&status=OPEN
// Response: 200 OK with array of Position, newest acquired date first
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) AllPositions(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	status := r.URL.Query().Get("status")

	positions, err := h.positionService.GetPositions(ticker, status)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// GetPosition handles GET requests to retrieve a single position by ID.
//
// Endpoint: GET /api/position/{uuid}
// Response: 200 OK with Position
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	position, err := h.positionService.GetPosition(positionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePosition.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// CreatePosition handles POST requests to record a new share lot.
//
// Endpoint: POST /api/position
// Request Body: CreatePositionRequest
// Response: 201 Created with Position (status OPEN)
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *PositionHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.positionService.CreatePosition(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// UpdatePosition handles PUT requests to patch position fields for
// corrections.
//
// Endpoint: PUT /api/position/{uuid}
// Request Body: UpdatePositionRequest (all fields optional)
// Response: 200 OK with updated Position
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if update fails
func (h *PositionHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.positionService.UpdatePosition(r.Context(), positionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// DeletePosition handles DELETE requests to remove a position. A hard delete
// with no cascade.
//
// Endpoint: DELETE /api/position/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if deletion fails
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	if err := h.positionService.DeletePosition(r.Context(), positionID); err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// SellPosition handles POST requests to sell an open share lot.
//
// Endpoint: POST /api/position/{uuid}/sell
// Request Body: SellPositionRequest (soldPrice, soldDate?)
// Response: 200 OK with the SOLD Position
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if position not found
// Error: 409 Conflict if the position is already sold
// Error: 500 Internal Server Error if the sale fails
func (h *PositionHandler) SellPosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SellPositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSellPosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.positionService.SellPosition(r.Context(), positionID, *req.SoldPrice, req.SoldDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPositionNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrPositionNotOpen):
			response.RespondError(w, http.StatusConflict, apperrors.ErrPositionNotOpen.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to sell position", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}
