package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/response"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/service"
)

// AnalyticsHandler handles HTTP requests for derived metrics and covered
// call allocation endpoints. All endpoints are read-only.
type AnalyticsHandler struct {
	metricsService    *service.MetricsService
	allocationService *service.AllocationService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the provided
// service dependencies.
func NewAnalyticsHandler(metricsService *service.MetricsService, allocationService *service.AllocationService) *AnalyticsHandler {
	return &AnalyticsHandler{
		metricsService:    metricsService,
		allocationService: allocationService,
	}
}

// TickerMetrics handles GET requests for per-ticker performance metrics.
//
// Endpoint: GET /api/analytics/ticker/{ticker}
// Response: 200 OK with TickerMetrics
// Error: 400 Bad Request if the ticker is empty
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) TickerMetrics(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
	if ticker == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidTicker.Error(), "")
		return
	}

	metrics, err := h.metricsService.GetTickerMetrics(ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeMetrics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}

// PortfolioMetrics handles GET requests for portfolio-wide aggregates.
//
// Endpoint: GET /api/analytics/portfolio
// Response: 200 OK with PortfolioMetrics
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) PortfolioMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metricsService.GetPortfolioMetrics()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeMetrics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}

// EnhancedPortfolioMetrics handles GET requests for portfolio aggregates
// enriched with capital utilization figures from account settings.
//
// Endpoint: GET /api/analytics/portfolio/enhanced
// Response: 200 OK with EnhancedPortfolioMetrics
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) EnhancedPortfolioMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metricsService.GetEnhancedPortfolioMetrics(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeMetrics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}

// TickerAllocation handles GET requests for the covered call share
// allocation of a single ticker.
//
// Endpoint: GET /api/analytics/allocation/{ticker}
// Response: 200 OK with CallAllocation
// Error: 400 Bad Request if the ticker is empty
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) TickerAllocation(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
	if ticker == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidTicker.Error(), "")
		return
	}

	allocation, err := h.allocationService.GetCoveredCallAllocation(ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAllocation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allocation)
}

// AllAllocations handles GET requests for covered call allocations across
// every ticker that has ever appeared in a trade or position.
//
// Endpoint: GET /api/analytics/allocation
// Response: 200 OK with map of ticker to CallAllocation
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) AllAllocations(w http.ResponseWriter, r *http.Request) {
	allocations, err := h.allocationService.GetAllAllocations()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAllocation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allocations)
}

// AllTickers handles GET requests for the distinct tickers known to the
// system, across both trades and positions.
//
// Endpoint: GET /api/analytics/tickers
// Response: 200 OK with sorted array of ticker strings
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalyticsHandler) AllTickers(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.metricsService.GetAllTickers()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTickers.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, tickers)
}

// UnrealizedReport handles GET requests for the mark-to-market report over
// open trades and open positions, priced from the latest snapshots.
//
// Endpoint: GET /api/analytics/unrealized
// Response: 200 OK with UnrealizedReport
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) UnrealizedReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.metricsService.GetUnrealizedReport()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeMetrics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
