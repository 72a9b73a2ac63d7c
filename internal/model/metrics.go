package model

// TickerMetrics represents aggregate performance figures for a single ticker
// at a point in time. Recomputed from raw trade and position records on every
// query; nothing here is persisted.
type TickerMetrics struct {
	Ticker              string  `json:"ticker"`
	TotalPremium        float64 `json:"totalPremium"`        // Net collected minus paid across all trades
	TotalTrades         int     `json:"totalTrades"`         // All trades regardless of status
	OpenPositions       int     `json:"openPositions"`       // Open share lots
	RealizedPnL         float64 `json:"realizedPnL"`         // Net over CLOSED and EXPIRED trades
	UnrealizedPnL       float64 `json:"unrealizedPnL"`       // Placeholder, see UnrealizedReport
	AnnualizedReturn    float64 `json:"annualizedReturn"`    // Percent
	AvgDaysToExpiration float64 `json:"avgDaysToExpiration"` // Mean over open trades
	WinRate             float64 `json:"winRate"`             // Percent of closed trades with collected > paid
}

// PortfolioMetrics represents aggregate performance across every ticker.
// Note totalPremiumCollected is gross (paid premium not subtracted), unlike
// the per-ticker totalPremium which is net.
type PortfolioMetrics struct {
	TotalPremiumCollected float64 `json:"totalPremiumCollected"`
	TotalRealizedPnL      float64 `json:"totalRealizedPnL"`
	TotalUnrealizedPnL    float64 `json:"totalUnrealizedPnL"`
	TotalCapitalDeployed  float64 `json:"totalCapitalDeployed"`
	AnnualizedReturn      float64 `json:"annualizedReturn"`
	TotalTrades           int     `json:"totalTrades"`
	ActiveTrades          int     `json:"activeTrades"`
	ActivePositions       int     `json:"activePositions"`
	WinRate               float64 `json:"winRate"`
	AvgPremiumPerTrade    float64 `json:"avgPremiumPerTrade"`
}

// EnhancedPortfolioMetrics extends PortfolioMetrics with account capital
// fields. cashUsedForCSPs follows the cash collateral model: every open
// cash-secured put reserves strike x quantity x 100 in cash.
type EnhancedPortfolioMetrics struct {
	PortfolioMetrics
	TotalCapital         float64 `json:"totalCapital"`
	CashAvailable        float64 `json:"cashAvailable"`
	CashUsedForCSPs      float64 `json:"cashUsedForCSPs"`
	PercentCashAvailable float64 `json:"percentCashAvailable"`
	CapitalUtilization   float64 `json:"capitalUtilization"`
}

// TradeUnrealizedPnL is the mark-to-market result for one open trade against
// the current price snapshot for its ticker.
type TradeUnrealizedPnL struct {
	TradeID       string  `json:"tradeId"`
	Ticker        string  `json:"ticker"`
	UnrealizedPnL float64 `json:"unrealizedPnL"`
}

// PositionUnrealizedPnL is the mark-to-market result for one open share lot.
type PositionUnrealizedPnL struct {
	PositionID    string  `json:"positionId"`
	Ticker        string  `json:"ticker"`
	UnrealizedPnL float64 `json:"unrealizedPnL"`
}

// UnrealizedReport collects mark-to-market figures for every open trade and
// position that has a usable price snapshot.
type UnrealizedReport struct {
	Trades            []TradeUnrealizedPnL    `json:"trades"`
	Positions         []PositionUnrealizedPnL `json:"positions"`
	TotalTradePnL     float64                 `json:"totalTradePnL"`
	TotalPositionPnL  float64                 `json:"totalPositionPnL"`
}
