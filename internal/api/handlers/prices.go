package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/response"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/service"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/validation"
)

// PriceHandler handles HTTP requests for per-ticker price snapshots.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// AllPrices handles GET requests to retrieve every stored price snapshot.
//
// Endpoint: GET /api/price
// Response: 200 OK with array of CurrentPrice, ordered by ticker
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) AllPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.priceService.GetAllPrices()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}

// GetPrice handles GET requests for the snapshot of a single ticker.
//
// Endpoint: GET /api/price/{ticker}
// Response: 200 OK with CurrentPrice
// Error: 400 Bad Request if the ticker is empty
// Error: 404 Not Found if no snapshot exists for the ticker
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
	if ticker == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidTicker.Error(), "")
		return
	}

	price, err := h.priceService.GetPrice(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrPriceNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPriceNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, price)
}

// UpsertPrice handles POST requests to insert or merge a price snapshot for
// one ticker. Fields omitted from the request keep their stored values.
//
// Endpoint: POST /api/price
// Request Body: UpsertPriceRequest
// Response: 200 OK with the merged CurrentPrice
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the upsert fails
func (h *PriceHandler) UpsertPrice(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpsertPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePriceUpsert(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	price, err := h.priceService.UpsertPrice(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePrice.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, price)
}

// BulkUpsertPrices handles POST requests to merge price snapshots for many
// tickers in one call. Entries without a ticker are skipped rather than
// failing the batch.
//
// Endpoint: POST /api/price/bulk
// Request Body: BulkUpsertPriceRequest
// Response: 200 OK with {"updated": n}
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the upsert fails
func (h *PriceHandler) BulkUpsertPrices(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BulkUpsertPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBulkPriceUpsert(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	updated, err := h.priceService.BulkUpsertPrices(r.Context(), req.Prices)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePrice.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
