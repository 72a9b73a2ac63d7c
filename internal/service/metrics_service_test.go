package service_test

import (
	"context"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/service"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/testutil"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// TestMetricsService_GetTickerMetrics tests per-ticker aggregation.
//
// WHY: These figures drive the user's read of each wheel. Premium math is
// per-share x quantity x 100, wins are strictly collected > paid, and every
// ratio must degrade to exactly 0 rather than NaN when a denominator is
// empty.
func TestMetricsService_GetTickerMetrics(t *testing.T) {
	t.Run("computes premium and win for a closed put", func(t *testing.T) {
		// Setup: strike 50, premium 1.50, quantity 2, bought back at 0.50
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		testutil.NewTrade().
			WithTicker("AAPL").
			WithStrike(50.0).
			WithPremium(1.50).
			WithQuantity(2).
			Closed(0.50).
			Build(t, db)

		// Execute
		metrics, err := svc.GetTickerMetrics("AAPL")

		// Assert: collected=300, paid=100, net=200, one winning trade
		if err != nil {
			t.Fatalf("GetTickerMetrics() returned unexpected error: %v", err)
		}

		if !almostEqual(metrics.TotalPremium, 200.0) {
			t.Errorf("Expected total premium 200, got %v", metrics.TotalPremium)
		}
		if !almostEqual(metrics.RealizedPnL, 200.0) {
			t.Errorf("Expected realized P&L 200, got %v", metrics.RealizedPnL)
		}
		if !almostEqual(metrics.WinRate, 100.0) {
			t.Errorf("Expected win rate 100, got %v", metrics.WinRate)
		}
		if metrics.TotalTrades != 1 {
			t.Errorf("Expected 1 trade, got %d", metrics.TotalTrades)
		}
	})

	t.Run("win rate is exactly zero with no closed trades", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		testutil.NewTrade().WithTicker("MSFT").Build(t, db)

		metrics, err := svc.GetTickerMetrics("MSFT")
		if err != nil {
			t.Fatalf("GetTickerMetrics() returned unexpected error: %v", err)
		}

		if metrics.WinRate != 0 {
			t.Errorf("Expected win rate exactly 0, got %v", metrics.WinRate)
		}
		if math.IsNaN(metrics.WinRate) || math.IsInf(metrics.WinRate, 0) {
			t.Errorf("Win rate must never be NaN or Inf, got %v", metrics.WinRate)
		}
	})

	t.Run("a break-even trade is not a win", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		// Bought back at exactly the premium collected
		testutil.NewTrade().WithTicker("AMD").WithPremium(1.00).Closed(1.00).Build(t, db)

		metrics, err := svc.GetTickerMetrics("AMD")
		if err != nil {
			t.Fatalf("GetTickerMetrics() returned unexpected error: %v", err)
		}

		if metrics.WinRate != 0 {
			t.Errorf("Expected break-even trade to count as non-winning, got win rate %v", metrics.WinRate)
		}
	})

	t.Run("annualized return is zero without capital or closed trades", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		// Closed trade but no positions: totalCapital is 0
		testutil.NewTrade().WithTicker("NVDA").Closed(0.10).Build(t, db)

		metrics, err := svc.GetTickerMetrics("NVDA")
		if err != nil {
			t.Fatalf("GetTickerMetrics() returned unexpected error: %v", err)
		}

		if metrics.AnnualizedReturn != 0 {
			t.Errorf("Expected annualized return exactly 0 with no capital, got %v", metrics.AnnualizedReturn)
		}
		if math.IsNaN(metrics.AnnualizedReturn) || math.IsInf(metrics.AnnualizedReturn, 0) {
			t.Errorf("Annualized return must never be NaN or Inf, got %v", metrics.AnnualizedReturn)
		}
	})

	t.Run("expired trades count toward realized figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		testutil.NewTrade().WithTicker("INTC").WithPremium(0.80).Expired().Build(t, db)

		metrics, err := svc.GetTickerMetrics("INTC")
		if err != nil {
			t.Fatalf("GetTickerMetrics() returned unexpected error: %v", err)
		}

		// Expired worthless: full 80 retained, a win
		if !almostEqual(metrics.RealizedPnL, 80.0) {
			t.Errorf("Expected realized P&L 80, got %v", metrics.RealizedPnL)
		}
		if !almostEqual(metrics.WinRate, 100.0) {
			t.Errorf("Expected win rate 100, got %v", metrics.WinRate)
		}
	})
}

// TestMetricsService_GetPortfolioMetrics tests portfolio-wide aggregation.
//
// WHY: The portfolio view totals premium gross, not net, and must return the
// same answer on every call when nothing was written in between.
func TestMetricsService_GetPortfolioMetrics(t *testing.T) {
	t.Run("totals premium collected gross", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		testutil.NewTrade().WithTicker("AAPL").WithPremium(1.50).WithQuantity(2).Closed(0.50).Build(t, db)
		testutil.NewTrade().WithTicker("MSFT").WithPremium(2.00).WithQuantity(1).Build(t, db)

		// Execute
		metrics, err := svc.GetPortfolioMetrics()

		// Assert: 300 + 200 collected, the 100 paid on the close not subtracted
		if err != nil {
			t.Fatalf("GetPortfolioMetrics() returned unexpected error: %v", err)
		}

		if !almostEqual(metrics.TotalPremiumCollected, 500.0) {
			t.Errorf("Expected gross premium 500, got %v", metrics.TotalPremiumCollected)
		}
		if !almostEqual(metrics.TotalRealizedPnL, 200.0) {
			t.Errorf("Expected realized P&L 200, got %v", metrics.TotalRealizedPnL)
		}
		if metrics.TotalTrades != 2 || metrics.ActiveTrades != 1 {
			t.Errorf("Expected 2 trades with 1 active, got %d/%d", metrics.TotalTrades, metrics.ActiveTrades)
		}
		if !almostEqual(metrics.AvgPremiumPerTrade, 250.0) {
			t.Errorf("Expected avg premium 250, got %v", metrics.AvgPremiumPerTrade)
		}
	})

	t.Run("repeated calls return identical results", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		testutil.NewTrade().WithTicker("AAPL").Closed(0.25).Build(t, db)
		testutil.NewPosition().WithTicker("AAPL").Build(t, db)

		first, err := svc.GetPortfolioMetrics()
		if err != nil {
			t.Fatalf("GetPortfolioMetrics() returned unexpected error: %v", err)
		}
		second, err := svc.GetPortfolioMetrics()
		if err != nil {
			t.Fatalf("GetPortfolioMetrics() returned unexpected error: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Errorf("Expected identical results with no intervening writes:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})

	t.Run("zeroes cleanly on an empty database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		metrics, err := svc.GetPortfolioMetrics()
		if err != nil {
			t.Fatalf("GetPortfolioMetrics() returned unexpected error: %v", err)
		}

		if metrics.WinRate != 0 || metrics.AnnualizedReturn != 0 || metrics.AvgPremiumPerTrade != 0 {
			t.Errorf("Expected all ratios exactly 0 on empty data, got %+v", metrics)
		}
	})
}

// TestMetricsService_GetEnhancedPortfolioMetrics tests the capital overlay.
//
// WHY: Capital utilization and cash reserved for cash-secured puts are the
// figures that tell the user how much more they can deploy. They must follow
// the worked arithmetic exactly and guard division by a zero total.
func TestMetricsService_GetEnhancedPortfolioMetrics(t *testing.T) {
	t.Run("computes utilization from account settings", func(t *testing.T) {
		// Setup: 100k total, 40k cash
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		testutil.SetAccount(t, db, 100000, 40000)

		// Execute
		metrics, err := svc.GetEnhancedPortfolioMetrics(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("GetEnhancedPortfolioMetrics() returned unexpected error: %v", err)
		}

		if !almostEqual(metrics.CapitalUtilization, 60.0) {
			t.Errorf("Expected capital utilization 60, got %v", metrics.CapitalUtilization)
		}
		if !almostEqual(metrics.PercentCashAvailable, 40.0) {
			t.Errorf("Expected percent cash available 40, got %v", metrics.PercentCashAvailable)
		}
	})

	t.Run("reserves cash for open cash-secured puts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		// 50 x 2 x 100 = 10000 reserved; the call and closed put do not count
		testutil.NewTrade().WithTicker("AAPL").AsPut().WithStrike(50.0).WithQuantity(2).Build(t, db)
		testutil.NewTrade().WithTicker("AAPL").AsCall().WithStrike(55.0).WithQuantity(1).Build(t, db)
		testutil.NewTrade().WithTicker("AAPL").AsPut().WithStrike(45.0).WithQuantity(1).Closed(0.10).Build(t, db)

		metrics, err := svc.GetEnhancedPortfolioMetrics(context.Background())
		if err != nil {
			t.Fatalf("GetEnhancedPortfolioMetrics() returned unexpected error: %v", err)
		}

		if !almostEqual(metrics.CashUsedForCSPs, 10000.0) {
			t.Errorf("Expected 10000 reserved for CSPs, got %v", metrics.CashUsedForCSPs)
		}
	})

	t.Run("guards against zero total capital", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db)

		metrics, err := svc.GetEnhancedPortfolioMetrics(context.Background())
		if err != nil {
			t.Fatalf("GetEnhancedPortfolioMetrics() returned unexpected error: %v", err)
		}

		if metrics.CapitalUtilization != 0 || metrics.PercentCashAvailable != 0 {
			t.Errorf("Expected exact 0 ratios with zero capital, got %+v", metrics)
		}
	})
}

// TestMetricsService_GetAllTickers tests the distinct ticker union.
//
// WHY: A ticker that only exists as a share lot (or only as a trade) must
// still appear, and the list is sorted for stable display.
func TestMetricsService_GetAllTickers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestMetricsService(t, db)

	testutil.NewTrade().WithTicker("MSFT").Build(t, db)
	testutil.NewTrade().WithTicker("AAPL").Build(t, db)
	testutil.NewPosition().WithTicker("NVDA").Build(t, db)
	testutil.NewPosition().WithTicker("AAPL").Build(t, db)

	tickers, err := svc.GetAllTickers()
	if err != nil {
		t.Fatalf("GetAllTickers() returned unexpected error: %v", err)
	}

	expected := []string{"AAPL", "MSFT", "NVDA"}
	if !reflect.DeepEqual(tickers, expected) {
		t.Errorf("Expected %v, got %v", expected, tickers)
	}
}

// TestTradeUnrealizedPnL tests the trade mark-to-market calculator.
//
// WHY: Direction matters: a falling option price is profit for a seller and
// loss for a buyer. The calculator branches on the opening action where the
// realized path deliberately does not.
func TestTradeUnrealizedPnL(t *testing.T) {
	optionPrice := 1.00
	price := &model.CurrentPrice{Ticker: "AAPL", OptionPrice: &optionPrice}

	tests := []struct {
		name     string
		action   string
		status   string
		premium  float64
		quantity int
		expected float64
	}{
		{
			name:     "short option below entry is profit",
			action:   model.ActionSellToOpen,
			status:   model.TradeStatusOpen,
			premium:  1.50,
			quantity: 2,
			// collected 300, current value 200
			expected: 100.0,
		},
		{
			name:     "long option below entry is loss",
			action:   model.ActionBuyToOpen,
			status:   model.TradeStatusOpen,
			premium:  1.50,
			quantity: 2,
			expected: -100.0,
		},
		{
			name:     "closed trade marks to zero",
			action:   model.ActionSellToOpen,
			status:   model.TradeStatusClosed,
			premium:  1.50,
			quantity: 2,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := model.Trade{
				Ticker:   "AAPL",
				Action:   tt.action,
				Status:   tt.status,
				Premium:  tt.premium,
				Quantity: tt.quantity,
			}

			got := service.TradeUnrealizedPnL(trade, price)
			if !almostEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	t.Run("nil price marks to zero", func(t *testing.T) {
		trade := model.Trade{Action: model.ActionSellToOpen, Status: model.TradeStatusOpen, Premium: 1.50, Quantity: 1}
		if got := service.TradeUnrealizedPnL(trade, nil); got != 0 {
			t.Errorf("Expected 0 without a price, got %v", got)
		}
	})
}

// TestPositionUnrealizedPnL tests the position mark-to-market calculator.
func TestPositionUnrealizedPnL(t *testing.T) {
	stockPrice := 55.0
	price := &model.CurrentPrice{Ticker: "AAPL", StockPrice: &stockPrice}

	position := model.Position{Ticker: "AAPL", Shares: 100, CostBasis: 5000.0}

	if got := service.PositionUnrealizedPnL(position, price); !almostEqual(got, 500.0) {
		t.Errorf("Expected 500, got %v", got)
	}

	if got := service.PositionUnrealizedPnL(position, nil); got != 0 {
		t.Errorf("Expected 0 without a price, got %v", got)
	}
}

// TestMetricsService_GetUnrealizedReport tests the mark-to-market report.
//
// WHY: The report must only cover open entries with usable snapshots and
// total each side separately.
func TestMetricsService_GetUnrealizedReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestMetricsService(t, db)

	testutil.NewTrade().WithTicker("AAPL").WithPremium(1.50).WithQuantity(2).Build(t, db)
	testutil.NewTrade().WithTicker("ORCL").Build(t, db) // no snapshot, skipped
	testutil.NewPosition().WithTicker("AAPL").WithShares(100).WithCostBasis(5000.0).Build(t, db)

	testutil.SetPrice(t, db, "AAPL", 55.0)
	testutil.SetOptionPrice(t, db, "AAPL", 1.00)

	report, err := svc.GetUnrealizedReport()
	if err != nil {
		t.Fatalf("GetUnrealizedReport() returned unexpected error: %v", err)
	}

	if len(report.Trades) != 1 {
		t.Fatalf("Expected 1 trade entry, got %d", len(report.Trades))
	}
	if !almostEqual(report.TotalTradePnL, 100.0) {
		t.Errorf("Expected total trade P&L 100, got %v", report.TotalTradePnL)
	}
	if len(report.Positions) != 1 {
		t.Fatalf("Expected 1 position entry, got %d", len(report.Positions))
	}
	if !almostEqual(report.TotalPositionPnL, 500.0) {
		t.Errorf("Expected total position P&L 500, got %v", report.TotalPositionPnL)
	}
}

// TestMetricsService_AnnualizedReturn tests the annualization formula.
//
// WHY: The formula scales the sum of net premium and realized P&L by
// 365 over the average days in trade. The overlap between the two terms is a
// preserved historical behavior; this pins the exact arithmetic.
func TestMetricsService_AnnualizedReturn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestMetricsService(t, db)

	openDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	closeDate := openDate.AddDate(0, 0, 73) // 365/73 = 5

	testutil.NewTrade().
		WithTicker("AAPL").
		WithPremium(1.00).
		WithQuantity(1).
		WithOpenDate(openDate).
		ClosedOn(0.0, closeDate).
		Build(t, db)
	testutil.NewPosition().WithTicker("AAPL").WithCostBasis(10000.0).Build(t, db)

	metrics, err := svc.GetTickerMetrics("AAPL")
	if err != nil {
		t.Fatalf("GetTickerMetrics() returned unexpected error: %v", err)
	}

	// (net 100 + realized 100) / 10000 * 5 * 100 = 10
	if !almostEqual(metrics.AnnualizedReturn, 10.0) {
		t.Errorf("Expected annualized return 10, got %v", metrics.AnnualizedReturn)
	}
}
