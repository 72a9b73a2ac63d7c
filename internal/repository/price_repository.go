package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
)

const priceColumns = `ticker, stock_price, option_price, strike, expiration, option_type, updated_at`

// PriceRepository provides data access methods for the current_prices table.
// One row per ticker; no history is kept.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// UpsertPrice writes a price snapshot for a ticker. Fields the caller leaves
// nil keep whatever value the existing row holds; the COALESCE on the update
// arm implements the partial-update-preserves-old-value merge rule.
func (r *PriceRepository) UpsertPrice(ctx context.Context, p *model.CurrentPrice) error {
	query := `
		INSERT INTO current_prices (` + priceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			stock_price = COALESCE(excluded.stock_price, current_prices.stock_price),
			option_price = COALESCE(excluded.option_price, current_prices.option_price),
			strike = COALESCE(excluded.strike, current_prices.strike),
			expiration = COALESCE(excluded.expiration, current_prices.expiration),
			option_type = COALESCE(excluded.option_type, current_prices.option_type),
			updated_at = excluded.updated_at
	`

	var expiration any
	if p.Expiration != nil {
		expiration = dateArg(*p.Expiration)
	}

	_, err := r.db.ExecContext(ctx, query,
		p.Ticker,
		floatPtrArg(p.StockPrice),
		floatPtrArg(p.OptionPrice),
		floatPtrArg(p.Strike),
		expiration,
		stringPtrArg(p.OptionType),
		timeArg(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert current price: %w", err)
	}

	return nil
}

// GetPrice retrieves the snapshot for one ticker.
// Returns apperrors.ErrPriceNotFound if no row exists.
func (r *PriceRepository) GetPrice(ticker string) (model.CurrentPrice, error) {
	query := `SELECT ` + priceColumns + ` FROM current_prices WHERE ticker = ?`

	row := r.db.QueryRow(query, ticker)
	p, err := scanPrice(row)
	if err == sql.ErrNoRows {
		return model.CurrentPrice{}, apperrors.ErrPriceNotFound
	}
	if err != nil {
		return model.CurrentPrice{}, fmt.Errorf("failed to scan current_prices results: %w", err)
	}

	return p, nil
}

// GetAllPrices retrieves every snapshot, ordered by ticker.
func (r *PriceRepository) GetAllPrices() ([]model.CurrentPrice, error) {
	query := `SELECT ` + priceColumns + ` FROM current_prices ORDER BY ticker ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query current_prices table: %w", err)
	}
	defer rows.Close()

	prices := []model.CurrentPrice{}
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan current_prices results: %w", err)
		}
		prices = append(prices, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating current_prices table: %w", err)
	}

	return prices, nil
}

func scanPrice(s scanner) (model.CurrentPrice, error) {
	var p model.CurrentPrice
	var updatedAtStr string
	var stockPrice, optionPrice, strike sql.NullFloat64
	var expiration, optionType sql.NullString

	err := s.Scan(
		&p.Ticker,
		&stockPrice,
		&optionPrice,
		&strike,
		&expiration,
		&optionType,
		&updatedAtStr,
	)
	if err != nil {
		return model.CurrentPrice{}, err
	}

	if p.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.CurrentPrice{}, err
	}
	if p.Expiration, err = parseNullTime(expiration); err != nil {
		return model.CurrentPrice{}, err
	}

	p.StockPrice = nullFloat(stockPrice)
	p.OptionPrice = nullFloat(optionPrice)
	p.Strike = nullFloat(strike)
	p.OptionType = nullString(optionType)

	return p, nil
}
