package service

import (
	"context"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/repository"
)

// MetricsService aggregates trade and position records into point-in-time
// performance figures. Every metric is recomputed from raw rows on each call;
// no derived state is persisted, so repeated calls with no intervening writes
// return identical results.
type MetricsService struct {
	tradeRepo    *repository.TradeRepository
	positionRepo *repository.PositionRepository
	accountRepo  *repository.AccountRepository
	priceRepo    *repository.PriceRepository
}

// NewMetricsService creates a new MetricsService with the provided repository dependencies.
func NewMetricsService(
	tradeRepo *repository.TradeRepository,
	positionRepo *repository.PositionRepository,
	accountRepo *repository.AccountRepository,
	priceRepo *repository.PriceRepository,
) *MetricsService {
	return &MetricsService{
		tradeRepo:    tradeRepo,
		positionRepo: positionRepo,
		accountRepo:  accountRepo,
		priceRepo:    priceRepo,
	}
}

// GetTickerMetrics computes per-ticker performance figures.
//
// totalPremium is net (collected minus paid) across every trade for the
// ticker regardless of status. Realized P&L and win rate only consider CLOSED
// and EXPIRED trades: assignments and rolls are not wins or losses in
// isolation. A break-even trade counts as non-winning.
//
// The annualized return adds totalPremium and realizedPnL even though the two
// overlap for closed trades. The double count is a known quirk preserved for
// compatibility with historical figures; do not "fix" it without a product
// decision.
func (s *MetricsService) GetTickerMetrics(ticker string) (model.TickerMetrics, error) {
	ticker = strings.ToUpper(ticker)

	trades, err := s.tradeRepo.GetTrades(model.TradeFilter{Ticker: ticker})
	if err != nil {
		return model.TickerMetrics{}, err
	}
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{Ticker: ticker})
	if err != nil {
		return model.TickerMetrics{}, err
	}

	totalPremium := 0.0
	openTrades := []model.Trade{}
	for _, t := range trades {
		totalPremium += t.NetPremium()
		if t.Status == model.TradeStatusOpen {
			openTrades = append(openTrades, t)
		}
	}

	realizedPnL, winningCount, closedCount := realizedFromClosed(trades)

	winRate := 0.0
	if closedCount > 0 {
		winRate = float64(winningCount) / float64(closedCount) * 100
	}

	// Cost basis of every position for the ticker, sold lots included.
	totalCapital := 0.0
	openPositions := 0
	for _, p := range positions {
		totalCapital += p.CostBasis
		if p.Status == model.PositionStatusOpen {
			openPositions++
		}
	}

	annualizedReturn := 0.0
	if avgDays := avgDaysInTrade(trades); totalCapital > 0 && avgDays > 0 {
		annualizedReturn = (totalPremium + realizedPnL) / totalCapital * (365 / avgDays) * 100
	}

	return model.TickerMetrics{
		Ticker:              ticker,
		TotalPremium:        totalPremium,
		TotalTrades:         len(trades),
		OpenPositions:       openPositions,
		RealizedPnL:         realizedPnL,
		UnrealizedPnL:       0, // mark-to-market lives in GetUnrealizedReport
		AnnualizedReturn:    annualizedReturn,
		AvgDaysToExpiration: avgDaysToExpiration(openTrades, time.Now().UTC()),
		WinRate:             winRate,
	}, nil
}

// GetPortfolioMetrics computes performance figures across every ticker.
// Unlike the per-ticker totalPremium, totalPremiumCollected is gross: the
// premium received on every trade with nothing subtracted for closes.
func (s *MetricsService) GetPortfolioMetrics() (model.PortfolioMetrics, error) {
	trades, err := s.tradeRepo.GetTrades(model.TradeFilter{})
	if err != nil {
		return model.PortfolioMetrics{}, err
	}
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{})
	if err != nil {
		return model.PortfolioMetrics{}, err
	}

	return buildPortfolioMetrics(trades, positions), nil
}

// GetEnhancedPortfolioMetrics extends the portfolio metrics with account
// capital figures. The three independent reads are fanned out concurrently.
func (s *MetricsService) GetEnhancedPortfolioMetrics(ctx context.Context) (model.EnhancedPortfolioMetrics, error) {
	var (
		trades    []model.Trade
		positions []model.Position
		settings  model.AccountSettings
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trades, err = s.tradeRepo.GetTrades(model.TradeFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		positions, err = s.positionRepo.GetPositions(model.PositionFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.accountRepo.GetSettings()
		return err
	})
	if err := g.Wait(); err != nil {
		return model.EnhancedPortfolioMetrics{}, err
	}

	// Cash collateral model: every open cash-secured put reserves
	// strike x quantity x 100 in cash.
	cashUsedForCSPs := 0.0
	for _, t := range trades {
		if t.Status == model.TradeStatusOpen && t.Type == model.OptionTypePut && t.Action == model.ActionSellToOpen {
			cashUsedForCSPs += t.Strike * float64(t.Quantity) * model.SharesPerContract
		}
	}

	percentCashAvailable := 0.0
	capitalUtilization := 0.0
	if settings.TotalCapital > 0 {
		percentCashAvailable = settings.CashAvailable / settings.TotalCapital * 100
		capitalUtilization = (settings.TotalCapital - settings.CashAvailable) / settings.TotalCapital * 100
	}

	return model.EnhancedPortfolioMetrics{
		PortfolioMetrics:     buildPortfolioMetrics(trades, positions),
		TotalCapital:         settings.TotalCapital,
		CashAvailable:        settings.CashAvailable,
		CashUsedForCSPs:      cashUsedForCSPs,
		PercentCashAvailable: percentCashAvailable,
		CapitalUtilization:   capitalUtilization,
	}, nil
}

// GetAllTickers returns the distinct tickers across trades and positions,
// sorted ascending.
func (s *MetricsService) GetAllTickers() ([]string, error) {
	return s.tradeRepo.GetAllTickers()
}

// GetUnrealizedReport marks every open trade and open position to market
// against the current price snapshots. Entries without a usable snapshot are
// skipped rather than reported as zero.
func (s *MetricsService) GetUnrealizedReport() (model.UnrealizedReport, error) {
	trades, err := s.tradeRepo.GetTrades(model.TradeFilter{Status: model.TradeStatusOpen})
	if err != nil {
		return model.UnrealizedReport{}, err
	}
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{Status: model.PositionStatusOpen})
	if err != nil {
		return model.UnrealizedReport{}, err
	}
	prices, err := s.priceRepo.GetAllPrices()
	if err != nil {
		return model.UnrealizedReport{}, err
	}

	byTicker := make(map[string]model.CurrentPrice, len(prices))
	for _, p := range prices {
		byTicker[p.Ticker] = p
	}

	report := model.UnrealizedReport{
		Trades:    []model.TradeUnrealizedPnL{},
		Positions: []model.PositionUnrealizedPnL{},
	}
	for _, t := range trades {
		price, ok := byTicker[t.Ticker]
		if !ok {
			continue
		}
		pnl := TradeUnrealizedPnL(t, &price)
		report.Trades = append(report.Trades, model.TradeUnrealizedPnL{
			TradeID:       t.ID,
			Ticker:        t.Ticker,
			UnrealizedPnL: pnl,
		})
		report.TotalTradePnL += pnl
	}
	for _, p := range positions {
		price, ok := byTicker[p.Ticker]
		if !ok || price.StockPrice == nil {
			continue
		}
		pnl := PositionUnrealizedPnL(p, &price)
		report.Positions = append(report.Positions, model.PositionUnrealizedPnL{
			PositionID:    p.ID,
			Ticker:        p.Ticker,
			UnrealizedPnL: pnl,
		})
		report.TotalPositionPnL += pnl
	}

	return report, nil
}

// TradeUnrealizedPnL marks one trade to market. Non-open trades and trades
// without a snapshot are worth 0. For sold options a falling option value is
// profit; for bought options a rising value is. The option value is the
// snapshot's option price (0 if absent) x quantity x 100.
func TradeUnrealizedPnL(t model.Trade, price *model.CurrentPrice) float64 {
	if t.Status != model.TradeStatusOpen || price == nil {
		return 0
	}

	optionPrice := 0.0
	if price.OptionPrice != nil {
		optionPrice = *price.OptionPrice
	}
	currentOptionValue := optionPrice * float64(t.Quantity) * model.SharesPerContract

	switch t.Action {
	case model.ActionSellToOpen, model.ActionSellToClose:
		return t.CollectedPremium() - currentOptionValue
	case model.ActionBuyToOpen, model.ActionBuyToClose:
		return currentOptionValue - t.CollectedPremium()
	default:
		return 0
	}
}

// PositionUnrealizedPnL marks one share lot to market: stock price x shares
// minus cost basis, or 0 without a stock price.
func PositionUnrealizedPnL(p model.Position, price *model.CurrentPrice) float64 {
	if price == nil || price.StockPrice == nil {
		return 0
	}
	return *price.StockPrice*float64(p.Shares) - p.CostBasis
}

func buildPortfolioMetrics(trades []model.Trade, positions []model.Position) model.PortfolioMetrics {
	totalPremiumCollected := 0.0
	activeTrades := 0
	for _, t := range trades {
		totalPremiumCollected += t.CollectedPremium()
		if t.Status == model.TradeStatusOpen {
			activeTrades++
		}
	}

	realizedPnL, winningCount, closedCount := realizedFromClosed(trades)

	winRate := 0.0
	if closedCount > 0 {
		winRate = float64(winningCount) / float64(closedCount) * 100
	}

	totalCapitalDeployed := 0.0
	activePositions := 0
	for _, p := range positions {
		totalCapitalDeployed += p.CostBasis
		if p.Status == model.PositionStatusOpen {
			activePositions++
		}
	}

	annualizedReturn := 0.0
	if avgDays := avgDaysInTrade(trades); totalCapitalDeployed > 0 && avgDays > 0 {
		annualizedReturn = (totalPremiumCollected + realizedPnL) / totalCapitalDeployed * (365 / avgDays) * 100
	}

	avgPremiumPerTrade := 0.0
	if len(trades) > 0 {
		avgPremiumPerTrade = totalPremiumCollected / float64(len(trades))
	}

	return model.PortfolioMetrics{
		TotalPremiumCollected: totalPremiumCollected,
		TotalRealizedPnL:      realizedPnL,
		TotalUnrealizedPnL:    0, // mark-to-market lives in GetUnrealizedReport
		TotalCapitalDeployed:  totalCapitalDeployed,
		AnnualizedReturn:      annualizedReturn,
		TotalTrades:           len(trades),
		ActiveTrades:          activeTrades,
		ActivePositions:       activePositions,
		WinRate:               winRate,
		AvgPremiumPerTrade:    avgPremiumPerTrade,
	}
}

// realizedFromClosed sums net premium over CLOSED and EXPIRED trades and
// counts the winners (strictly collected > paid).
func realizedFromClosed(trades []model.Trade) (realizedPnL float64, winningCount, closedCount int) {
	for _, t := range trades {
		if t.Status != model.TradeStatusClosed && t.Status != model.TradeStatusExpired {
			continue
		}
		closedCount++
		realizedPnL += t.NetPremium()
		if t.CollectedPremium() > t.PaidPremium() {
			winningCount++
		}
	}
	return realizedPnL, winningCount, closedCount
}

// avgDaysInTrade returns the mean number of days between open and close over
// every trade that has a close date, or 0 if none do.
func avgDaysInTrade(trades []model.Trade) float64 {
	totalDays := 0.0
	completed := 0
	for _, t := range trades {
		if t.CloseDate == nil {
			continue
		}
		completed++
		totalDays += math.Ceil(t.CloseDate.Sub(t.OpenDate).Hours() / 24)
	}
	if completed == 0 {
		return 0
	}
	return totalDays / float64(completed)
}

// avgDaysToExpiration returns the mean days until expiration over the given
// open trades, with already-expired contracts clamped at 0 days.
func avgDaysToExpiration(trades []model.Trade, now time.Time) float64 {
	if len(trades) == 0 {
		return 0
	}
	totalDays := 0.0
	for _, t := range trades {
		days := math.Ceil(t.Expiration.Sub(now).Hours() / 24)
		if days < 0 {
			days = 0
		}
		totalDays += days
	}
	return totalDays / float64(len(trades))
}
