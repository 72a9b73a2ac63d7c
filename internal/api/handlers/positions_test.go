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

// TestPositionHandler_CreatePosition tests the POST /api/position endpoint.
//
// WHY: Share lots must be whole 100-share multiples; the validation layer
// must refuse odd lots at the boundary with a 400.
func TestPositionHandler_CreatePosition(t *testing.T) {
	t.Run("returns 201 for a valid lot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/", map[string]any{
			"ticker":          "AAPL",
			"shares":          200,
			"costBasis":       150.0,
			"acquiredDate":    "2026-08-01",
			"acquisitionType": "ASSIGNED_PUT",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreatePosition(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Position
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Status != model.PositionStatusOpen {
			t.Errorf("Expected status OPEN, got %s", response.Status)
		}
	})

	t.Run("returns 400 for an odd lot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		handler := handlers.NewPositionHandler(svc)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/", map[string]any{
			"ticker":          "AAPL",
			"shares":          150,
			"costBasis":       150.0,
			"acquiredDate":    "2026-08-01",
			"acquisitionType": "ASSIGNED_PUT",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreatePosition(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestPositionHandler_SellPosition tests the POST /api/position/{uuid}/sell endpoint.
//
// WHY: Selling a sold lot is a state violation and must surface as 409, not
// a silent overwrite of the original sale.
func TestPositionHandler_SellPosition(t *testing.T) {
	t.Run("sells an open lot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		handler := handlers.NewPositionHandler(svc)
		position := testutil.NewPosition().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/"+position.ID+"/sell",
			map[string]any{"soldPrice": 62.50},
			map[string]string{"uuid": position.ID})
		w := httptest.NewRecorder()

		handler.SellPosition(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Position
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Status != model.PositionStatusSold {
			t.Errorf("Expected status SOLD, got %s", response.Status)
		}
	})

	t.Run("returns 409 for a sold lot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		handler := handlers.NewPositionHandler(svc)
		position := testutil.NewPosition().Sold(60.0).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/"+position.ID+"/sell",
			map[string]any{"soldPrice": 65.0},
			map[string]string{"uuid": position.ID})
		w := httptest.NewRecorder()

		handler.SellPosition(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		handler := handlers.NewPositionHandler(svc)

		missing := testutil.MakeID()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position/"+missing+"/sell",
			map[string]any{"soldPrice": 65.0},
			map[string]string{"uuid": missing})
		w := httptest.NewRecorder()

		handler.SellPosition(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestPositionHandler_AllPositions tests the GET /api/position endpoint.
func TestPositionHandler_AllPositions(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPositionService(t, db)
		handler := handlers.NewPositionHandler(svc)

		testutil.NewPosition().WithTicker("AAPL").Build(t, db)
		testutil.NewPosition().WithTicker("AAPL").Sold(60.0).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/position/", map[string]string{"status": "OPEN"})
		w := httptest.NewRecorder()

		handler.AllPositions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []model.Position
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 || response[0].Status != model.PositionStatusOpen {
			t.Errorf("Expected 1 open position, got %+v", response)
		}
	})
}
