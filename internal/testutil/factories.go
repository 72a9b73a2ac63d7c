package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
)

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	// Simple creation with defaults (OPEN SELL_TO_OPEN PUT)
//	trade := testutil.NewTrade().Build(t, db)
//
//	// Customized trade
//	trade := testutil.NewTrade().
//	    WithTicker("AAPL").
//	    AsCall().
//	    WithPremium(2.50).
//	    Closed(0.75).
//	    Build(t, db)
type TradeBuilder struct {
	ID           string
	Ticker       string
	Type         string
	Action       string
	Strike       float64
	Expiration   time.Time
	Premium      float64
	Quantity     int
	OpenDate     time.Time
	CloseDate    *time.Time
	ClosePremium *float64
	CloseMethod  *string
	Status       string
	PositionID   *string
}

// NewTrade creates a TradeBuilder with sensible defaults: an open
// cash-secured put expiring 30 days out.
func NewTrade() *TradeBuilder {
	return &TradeBuilder{
		ID:         MakeID(),
		Ticker:     "TEST",
		Type:       model.OptionTypePut,
		Action:     model.ActionSellToOpen,
		Strike:     50.0,
		Expiration: time.Now().UTC().AddDate(0, 0, 30),
		Premium:    1.50,
		Quantity:   1,
		OpenDate:   time.Now().UTC(),
		Status:     model.TradeStatusOpen,
	}
}

// WithID sets a custom ID.
func (b *TradeBuilder) WithID(id string) *TradeBuilder {
	b.ID = id
	return b
}

// WithTicker sets a custom ticker.
func (b *TradeBuilder) WithTicker(ticker string) *TradeBuilder {
	b.Ticker = ticker
	return b
}

// AsCall makes the trade a call.
func (b *TradeBuilder) AsCall() *TradeBuilder {
	b.Type = model.OptionTypeCall
	return b
}

// AsPut makes the trade a put.
func (b *TradeBuilder) AsPut() *TradeBuilder {
	b.Type = model.OptionTypePut
	return b
}

// WithAction sets the opening action.
func (b *TradeBuilder) WithAction(action string) *TradeBuilder {
	b.Action = action
	return b
}

// WithStrike sets the strike price.
func (b *TradeBuilder) WithStrike(strike float64) *TradeBuilder {
	b.Strike = strike
	return b
}

// WithExpiration sets the expiration date.
func (b *TradeBuilder) WithExpiration(expiration time.Time) *TradeBuilder {
	b.Expiration = expiration
	return b
}

// WithPremium sets the per-share premium.
func (b *TradeBuilder) WithPremium(premium float64) *TradeBuilder {
	b.Premium = premium
	return b
}

// WithQuantity sets the contract count.
func (b *TradeBuilder) WithQuantity(quantity int) *TradeBuilder {
	b.Quantity = quantity
	return b
}

// WithOpenDate sets the open date.
func (b *TradeBuilder) WithOpenDate(openDate time.Time) *TradeBuilder {
	b.OpenDate = openDate
	return b
}

// WithStatus sets the status without touching close fields.
func (b *TradeBuilder) WithStatus(status string) *TradeBuilder {
	b.Status = status
	return b
}

// WithPositionID links the trade to a position.
func (b *TradeBuilder) WithPositionID(positionID string) *TradeBuilder {
	b.PositionID = &positionID
	return b
}

// Closed marks the trade as bought back at the given per-share premium,
// closed now.
func (b *TradeBuilder) Closed(closePremium float64) *TradeBuilder {
	now := time.Now().UTC()
	method := model.CloseMethodBuyback
	b.Status = model.TradeStatusClosed
	b.CloseDate = &now
	b.ClosePremium = &closePremium
	b.CloseMethod = &method
	return b
}

// ClosedOn marks the trade as bought back on a specific date.
func (b *TradeBuilder) ClosedOn(closePremium float64, closeDate time.Time) *TradeBuilder {
	b.Closed(closePremium)
	b.CloseDate = &closeDate
	return b
}

// Expired marks the trade as expired worthless now.
func (b *TradeBuilder) Expired() *TradeBuilder {
	now := time.Now().UTC()
	zero := 0.0
	method := model.CloseMethodExpired
	b.Status = model.TradeStatusExpired
	b.CloseDate = &now
	b.ClosePremium = &zero
	b.CloseMethod = &method
	return b
}

// Build creates the trade in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	now := time.Now().UTC()

	query := `
		INSERT INTO trades (id, ticker, type, action, strike, expiration, premium, quantity,
			open_date, close_date, close_premium, close_method, status, position_id,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var closeDate, closeMethod, positionID any
	if b.CloseDate != nil {
		closeDate = b.CloseDate.UTC().Format(time.RFC3339)
	}
	if b.CloseMethod != nil {
		closeMethod = *b.CloseMethod
	}
	if b.PositionID != nil {
		positionID = *b.PositionID
	}
	var closePremium any
	if b.ClosePremium != nil {
		closePremium = *b.ClosePremium
	}

	_, err := db.Exec(query,
		b.ID,
		b.Ticker,
		b.Type,
		b.Action,
		b.Strike,
		b.Expiration.UTC().Format("2006-01-02"),
		b.Premium,
		b.Quantity,
		b.OpenDate.UTC().Format(time.RFC3339),
		closeDate,
		closePremium,
		closeMethod,
		b.Status,
		positionID,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	return model.Trade{
		ID:           b.ID,
		Ticker:       b.Ticker,
		Type:         b.Type,
		Action:       b.Action,
		Strike:       b.Strike,
		Expiration:   b.Expiration,
		Premium:      b.Premium,
		Quantity:     b.Quantity,
		OpenDate:     b.OpenDate,
		CloseDate:    b.CloseDate,
		ClosePremium: b.ClosePremium,
		CloseMethod:  b.CloseMethod,
		Status:       b.Status,
		PositionID:   b.PositionID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	position := testutil.NewPosition().
//	    WithTicker("AAPL").
//	    WithShares(300).
//	    Build(t, db)
type PositionBuilder struct {
	ID              string
	Ticker          string
	Shares          int
	CostBasis       float64
	AcquiredDate    time.Time
	SoldDate        *time.Time
	SoldPrice       *float64
	Status          string
	AcquisitionType string
}

// NewPosition creates a PositionBuilder with sensible defaults: one open lot
// of 100 shares from a put assignment.
func NewPosition() *PositionBuilder {
	return &PositionBuilder{
		ID:              MakeID(),
		Ticker:          "TEST",
		Shares:          100,
		CostBasis:       50.0,
		AcquiredDate:    time.Now().UTC(),
		Status:          model.PositionStatusOpen,
		AcquisitionType: model.AcquisitionAssignedPut,
	}
}

// WithID sets a custom ID.
func (b *PositionBuilder) WithID(id string) *PositionBuilder {
	b.ID = id
	return b
}

// WithTicker sets a custom ticker.
func (b *PositionBuilder) WithTicker(ticker string) *PositionBuilder {
	b.Ticker = ticker
	return b
}

// WithShares sets the share count.
func (b *PositionBuilder) WithShares(shares int) *PositionBuilder {
	b.Shares = shares
	return b
}

// WithCostBasis sets the per-share cost basis.
func (b *PositionBuilder) WithCostBasis(costBasis float64) *PositionBuilder {
	b.CostBasis = costBasis
	return b
}

// WithAcquiredDate sets the acquisition date.
func (b *PositionBuilder) WithAcquiredDate(acquiredDate time.Time) *PositionBuilder {
	b.AcquiredDate = acquiredDate
	return b
}

// WithAcquisitionType sets how the lot was acquired.
func (b *PositionBuilder) WithAcquisitionType(acquisitionType string) *PositionBuilder {
	b.AcquisitionType = acquisitionType
	return b
}

// Sold marks the position as sold at the given per-share price, sold now.
func (b *PositionBuilder) Sold(soldPrice float64) *PositionBuilder {
	now := time.Now().UTC()
	b.Status = model.PositionStatusSold
	b.SoldDate = &now
	b.SoldPrice = &soldPrice
	return b
}

// Build creates the position in the database and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	now := time.Now().UTC()

	query := `
		INSERT INTO positions (id, ticker, shares, cost_basis, acquired_date, sold_date,
			sold_price, status, acquisition_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var soldDate, soldPrice any
	if b.SoldDate != nil {
		soldDate = b.SoldDate.UTC().Format(time.RFC3339)
	}
	if b.SoldPrice != nil {
		soldPrice = *b.SoldPrice
	}

	_, err := db.Exec(query,
		b.ID,
		b.Ticker,
		b.Shares,
		b.CostBasis,
		b.AcquiredDate.UTC().Format("2006-01-02"),
		soldDate,
		soldPrice,
		b.Status,
		b.AcquisitionType,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return model.Position{
		ID:              b.ID,
		Ticker:          b.Ticker,
		Shares:          b.Shares,
		CostBasis:       b.CostBasis,
		AcquiredDate:    b.AcquiredDate,
		SoldDate:        b.SoldDate,
		SoldPrice:       b.SoldPrice,
		Status:          b.Status,
		AcquisitionType: b.AcquisitionType,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SetPrice stores a stock price snapshot for a ticker, replacing any
// existing snapshot fields it names.
func SetPrice(t *testing.T, db *sql.DB, ticker string, stockPrice float64) {
	t.Helper()

	query := `
		INSERT INTO current_prices (ticker, stock_price, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			stock_price = excluded.stock_price,
			updated_at = excluded.updated_at
	`

	if _, err := db.Exec(query, ticker, stockPrice, time.Now().UTC().Format(time.RFC3339)); err != nil {
		t.Fatalf("Failed to set test price: %v", err)
	}
}

// SetOptionPrice stores an option price snapshot for a ticker.
func SetOptionPrice(t *testing.T, db *sql.DB, ticker string, optionPrice float64) {
	t.Helper()

	query := `
		INSERT INTO current_prices (ticker, option_price, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			option_price = excluded.option_price,
			updated_at = excluded.updated_at
	`

	if _, err := db.Exec(query, ticker, optionPrice, time.Now().UTC().Format(time.RFC3339)); err != nil {
		t.Fatalf("Failed to set test option price: %v", err)
	}
}

// SetAccount overwrites the singleton account settings row.
func SetAccount(t *testing.T, db *sql.DB, totalCapital, cashAvailable float64) {
	t.Helper()

	query := `UPDATE account_settings SET total_capital = ?, cash_available = ?, updated_at = ? WHERE id = 'default'`

	if _, err := db.Exec(query, totalCapital, cashAvailable, time.Now().UTC().Format(time.RFC3339)); err != nil {
		t.Fatalf("Failed to set test account settings: %v", err)
	}
}
