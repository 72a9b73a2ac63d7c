package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/handlers"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/testutil"
)

// TestAnalyticsHandler_TickerAllocation tests GET /api/analytics/allocation/{ticker}.
//
// WHY: The allocation endpoint is read by the frontend before every covered
// call entry; the worked 300-share example must survive the HTTP round trip.
func TestAnalyticsHandler_TickerAllocation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewAnalyticsHandler(
		testutil.NewTestMetricsService(t, db),
		testutil.NewTestAllocationService(t, db),
	)

	testutil.NewPosition().WithTicker("AAPL").WithShares(300).Build(t, db)
	testutil.NewTrade().WithTicker("AAPL").AsCall().WithQuantity(2).Build(t, db)

	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/analytics/allocation/AAPL", map[string]string{"ticker": "AAPL"})
	w := httptest.NewRecorder()

	handler.TickerAllocation(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response model.CallAllocation
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.AllocatedShares != 200 || response.UnallocatedShares != 100 {
		t.Errorf("Expected 200 allocated / 100 unallocated, got %+v", response)
	}
}

// TestAnalyticsHandler_PortfolioMetrics tests GET /api/analytics/portfolio.
func TestAnalyticsHandler_PortfolioMetrics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewAnalyticsHandler(
		testutil.NewTestMetricsService(t, db),
		testutil.NewTestAllocationService(t, db),
	)

	testutil.NewTrade().WithTicker("AAPL").WithPremium(1.50).WithQuantity(2).Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/portfolio", nil)
	w := httptest.NewRecorder()

	handler.PortfolioMetrics(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response model.PortfolioMetrics
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.TotalPremiumCollected != 300 {
		t.Errorf("Expected premium 300, got %v", response.TotalPremiumCollected)
	}
	if response.ActiveTrades != 1 {
		t.Errorf("Expected 1 active trade, got %d", response.ActiveTrades)
	}
}

// TestAnalyticsHandler_EnhancedPortfolioMetrics tests GET /api/analytics/portfolio/enhanced.
func TestAnalyticsHandler_EnhancedPortfolioMetrics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewAnalyticsHandler(
		testutil.NewTestMetricsService(t, db),
		testutil.NewTestAllocationService(t, db),
	)

	testutil.SetAccount(t, db, 100000, 40000)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/portfolio/enhanced", nil)
	w := httptest.NewRecorder()

	handler.EnhancedPortfolioMetrics(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response model.EnhancedPortfolioMetrics
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.CapitalUtilization != 60.0 {
		t.Errorf("Expected capital utilization 60, got %v", response.CapitalUtilization)
	}
}

// TestAnalyticsHandler_AllTickers tests GET /api/analytics/tickers.
func TestAnalyticsHandler_AllTickers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewAnalyticsHandler(
		testutil.NewTestMetricsService(t, db),
		testutil.NewTestAllocationService(t, db),
	)

	testutil.NewTrade().WithTicker("MSFT").Build(t, db)
	testutil.NewPosition().WithTicker("AAPL").Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/tickers", nil)
	w := httptest.NewRecorder()

	handler.AllTickers(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response []string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response) != 2 || response[0] != "AAPL" || response[1] != "MSFT" {
		t.Errorf("Expected sorted [AAPL MSFT], got %v", response)
	}
}
