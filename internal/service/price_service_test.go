package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string { return &v }

// TestPriceService_UpsertPrice tests the snapshot merge semantics.
//
// WHY: Stock and option prices are refreshed by different callers at
// different times. An update naming only one field must never wipe the
// others.
func TestPriceService_UpsertPrice(t *testing.T) {
	t.Run("creates a snapshot for a new ticker", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		// Execute
		price, err := svc.UpsertPrice(context.Background(), request.UpsertPriceRequest{
			Ticker:     "aapl",
			StockPrice: floatPtr(150.25),
		})

		// Assert
		if err != nil {
			t.Fatalf("UpsertPrice() returned unexpected error: %v", err)
		}

		if price.Ticker != "AAPL" {
			t.Errorf("Expected ticker AAPL, got %s", price.Ticker)
		}
		if price.StockPrice == nil || *price.StockPrice != 150.25 {
			t.Errorf("Expected stock price 150.25, got %v", price.StockPrice)
		}
	})

	t.Run("preserves absent fields on merge", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		_, err := svc.UpsertPrice(context.Background(), request.UpsertPriceRequest{
			Ticker:      "MSFT",
			StockPrice:  floatPtr(400.0),
			OptionPrice: floatPtr(2.50),
			Strike:      floatPtr(410.0),
			OptionType:  stringPtr(model.OptionTypeCall),
		})
		if err != nil {
			t.Fatalf("UpsertPrice() returned unexpected error: %v", err)
		}

		// Second update names only the stock price
		merged, err := svc.UpsertPrice(context.Background(), request.UpsertPriceRequest{
			Ticker:     "MSFT",
			StockPrice: floatPtr(405.0),
		})
		if err != nil {
			t.Fatalf("UpsertPrice() returned unexpected error: %v", err)
		}

		if merged.StockPrice == nil || *merged.StockPrice != 405.0 {
			t.Errorf("Expected stock price updated to 405, got %v", merged.StockPrice)
		}
		if merged.OptionPrice == nil || *merged.OptionPrice != 2.50 {
			t.Errorf("Expected option price preserved at 2.50, got %v", merged.OptionPrice)
		}
		if merged.Strike == nil || *merged.Strike != 410.0 {
			t.Errorf("Expected strike preserved at 410, got %v", merged.Strike)
		}
		if merged.OptionType == nil || *merged.OptionType != model.OptionTypeCall {
			t.Errorf("Expected option type preserved, got %v", merged.OptionType)
		}
	})
}

// TestPriceService_BulkUpsertPrices tests the batch path.
//
// WHY: Batches come from pasted broker data; an entry with a missing ticker
// is junk to skip, not a reason to drop the whole batch.
func TestPriceService_BulkUpsertPrices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPriceService(t, db)

	count, err := svc.BulkUpsertPrices(context.Background(), []request.UpsertPriceRequest{
		{Ticker: "AAPL", StockPrice: floatPtr(150.0)},
		{Ticker: "  ", StockPrice: floatPtr(1.0)},
		{Ticker: "MSFT", StockPrice: floatPtr(400.0)},
	})
	if err != nil {
		t.Fatalf("BulkUpsertPrices() returned unexpected error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 snapshots written, got %d", count)
	}

	prices, err := svc.GetAllPrices()
	if err != nil {
		t.Fatalf("GetAllPrices() returned unexpected error: %v", err)
	}
	if len(prices) != 2 {
		t.Errorf("Expected 2 stored snapshots, got %d", len(prices))
	}
}

// TestPriceService_GetPrice tests single snapshot reads.
func TestPriceService_GetPrice(t *testing.T) {
	t.Run("normalizes the ticker on lookup", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)
		testutil.SetPrice(t, db, "AAPL", 150.0)

		price, err := svc.GetPrice("aapl")
		if err != nil {
			t.Fatalf("GetPrice() returned unexpected error: %v", err)
		}
		if price.Ticker != "AAPL" {
			t.Errorf("Expected ticker AAPL, got %s", price.Ticker)
		}
	})

	t.Run("returns not found for an unknown ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		if _, err := svc.GetPrice("NOPE"); !errors.Is(err, apperrors.ErrPriceNotFound) {
			t.Errorf("Expected ErrPriceNotFound, got %v", err)
		}
	})
}
