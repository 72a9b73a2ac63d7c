package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
)

// tradeColumns is the canonical column list for trade queries. Scan order in
// scanTrade must match.
const tradeColumns = `id, ticker, type, action, strike, expiration, premium, quantity,
	open_date, close_date, close_premium, close_method, status, notes,
	position_id, rolled_to_trade_id, rolled_from_trade_id, created_at, updated_at`

// TradeRepository provides data access methods for the trades table.
type TradeRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside the
// given transaction. Used by the roll operation, which must create one trade
// and close another as a unit.
func (r *TradeRepository) WithTx(tx *sql.Tx) *TradeRepository {
	return &TradeRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TradeRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertTrade writes a new trade row.
func (r *TradeRepository) InsertTrade(ctx context.Context, t *model.Trade) error {
	query := `
		INSERT INTO trades (` + tradeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.Ticker,
		t.Type,
		t.Action,
		t.Strike,
		dateArg(t.Expiration),
		t.Premium,
		t.Quantity,
		timeArg(t.OpenDate),
		timePtrArg(t.CloseDate),
		floatPtrArg(t.ClosePremium),
		stringPtrArg(t.CloseMethod),
		t.Status,
		stringPtrArg(t.Notes),
		stringPtrArg(t.PositionID),
		stringPtrArg(t.RolledToTradeID),
		stringPtrArg(t.RolledFromTradeID),
		timeArg(t.CreatedAt),
		timeArg(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// GetTrade retrieves a single trade by ID.
// Returns apperrors.ErrTradeNotFound if no row exists.
func (r *TradeRepository) GetTrade(tradeID string) (model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id = ?`

	row := r.getQuerier().QueryRow(query, tradeID)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}
	if err != nil {
		return model.Trade{}, fmt.Errorf("failed to scan trades table results: %w", err)
	}

	return t, nil
}

// GetTrades retrieves trades matching the filter, ordered by open date
// descending. An empty filter returns every trade.
func (r *TradeRepository) GetTrades(filter model.TradeFilter) ([]model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades`

	var args []any
	var where []string

	if filter.Ticker != "" {
		where = append(where, "ticker = ?")
		args = append(args, filter.Ticker)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY open_date DESC"

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trades table results: %w", err)
		}
		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades table: %w", err)
	}

	return trades, nil
}

// GetActiveTradesByTicker retrieves the OPEN trades for a ticker, ordered by
// expiration ascending (soonest expiry first).
func (r *TradeRepository) GetActiveTradesByTicker(ticker string) ([]model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE ticker = ? AND status = ? ORDER BY expiration ASC`

	rows, err := r.getQuerier().Query(query, ticker, model.TradeStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trades table results: %w", err)
		}
		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades table: %w", err)
	}

	return trades, nil
}

// TradeUpdate describes a partial update of a trade row. Nil fields are left
// untouched. The column for each field is enumerated explicitly in
// setClauses; there is no name-derived mapping.
type TradeUpdate struct {
	Ticker            *string
	Type              *string
	Action            *string
	Strike            *float64
	Expiration        *time.Time
	Premium           *float64
	Quantity          *int
	OpenDate          *time.Time
	CloseDate         *time.Time
	ClosePremium      *float64
	CloseMethod       *string
	Status            *string
	Notes             *string
	PositionID        *string
	RolledToTradeID   *string
	RolledFromTradeID *string
}

func (u TradeUpdate) setClauses() ([]string, []any) {
	var clauses []string
	var args []any

	if u.Ticker != nil {
		clauses = append(clauses, "ticker = ?")
		args = append(args, *u.Ticker)
	}
	if u.Type != nil {
		clauses = append(clauses, "type = ?")
		args = append(args, *u.Type)
	}
	if u.Action != nil {
		clauses = append(clauses, "action = ?")
		args = append(args, *u.Action)
	}
	if u.Strike != nil {
		clauses = append(clauses, "strike = ?")
		args = append(args, *u.Strike)
	}
	if u.Expiration != nil {
		clauses = append(clauses, "expiration = ?")
		args = append(args, dateArg(*u.Expiration))
	}
	if u.Premium != nil {
		clauses = append(clauses, "premium = ?")
		args = append(args, *u.Premium)
	}
	if u.Quantity != nil {
		clauses = append(clauses, "quantity = ?")
		args = append(args, *u.Quantity)
	}
	if u.OpenDate != nil {
		clauses = append(clauses, "open_date = ?")
		args = append(args, timeArg(*u.OpenDate))
	}
	if u.CloseDate != nil {
		clauses = append(clauses, "close_date = ?")
		args = append(args, timeArg(*u.CloseDate))
	}
	if u.ClosePremium != nil {
		clauses = append(clauses, "close_premium = ?")
		args = append(args, *u.ClosePremium)
	}
	if u.CloseMethod != nil {
		clauses = append(clauses, "close_method = ?")
		args = append(args, *u.CloseMethod)
	}
	if u.Status != nil {
		clauses = append(clauses, "status = ?")
		args = append(args, *u.Status)
	}
	if u.Notes != nil {
		clauses = append(clauses, "notes = ?")
		args = append(args, *u.Notes)
	}
	if u.PositionID != nil {
		clauses = append(clauses, "position_id = ?")
		args = append(args, *u.PositionID)
	}
	if u.RolledToTradeID != nil {
		clauses = append(clauses, "rolled_to_trade_id = ?")
		args = append(args, *u.RolledToTradeID)
	}
	if u.RolledFromTradeID != nil {
		clauses = append(clauses, "rolled_from_trade_id = ?")
		args = append(args, *u.RolledFromTradeID)
	}

	return clauses, args
}

// UpdateTrade applies a partial update and always refreshes updated_at, even
// when no other field changed.
// Returns apperrors.ErrTradeNotFound if no row with the given ID exists.
func (r *TradeRepository) UpdateTrade(ctx context.Context, tradeID string, update TradeUpdate) error {
	clauses, args := update.setClauses()

	clauses = append(clauses, "updated_at = ?")
	args = append(args, timeArg(time.Now()))
	args = append(args, tradeID)

	query := `UPDATE trades SET ` + strings.Join(clauses, ", ") + ` WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrTradeNotFound
	}

	return nil
}

// DeleteTrade removes a trade row by ID. A hard delete: linked positions and
// roll partners are not touched.
// Returns apperrors.ErrTradeNotFound if no row with the given ID exists.
func (r *TradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	query := `DELETE FROM trades WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrTradeNotFound
	}

	return nil
}

// GetAllTickers returns the distinct tickers across trades and positions,
// sorted ascending. Lives here rather than in its own repository because the
// union is a single query.
func (r *TradeRepository) GetAllTickers() ([]string, error) {
	query := `SELECT DISTINCT ticker FROM trades UNION SELECT DISTINCT ticker FROM positions ORDER BY ticker`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan ticker results: %w", err)
		}
		tickers = append(tickers, ticker)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickers: %w", err)
	}

	return tickers, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (model.Trade, error) {
	var t model.Trade
	var expirationStr, openDateStr, createdAtStr, updatedAtStr string
	var closeDate, closeMethod, notes, positionID, rolledTo, rolledFrom sql.NullString
	var closePremium sql.NullFloat64

	err := s.Scan(
		&t.ID,
		&t.Ticker,
		&t.Type,
		&t.Action,
		&t.Strike,
		&expirationStr,
		&t.Premium,
		&t.Quantity,
		&openDateStr,
		&closeDate,
		&closePremium,
		&closeMethod,
		&t.Status,
		&notes,
		&positionID,
		&rolledTo,
		&rolledFrom,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return model.Trade{}, err
	}

	if t.Expiration, err = ParseTime(expirationStr); err != nil {
		return model.Trade{}, err
	}
	if t.OpenDate, err = ParseTime(openDateStr); err != nil {
		return model.Trade{}, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Trade{}, err
	}
	if t.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.Trade{}, err
	}
	if t.CloseDate, err = parseNullTime(closeDate); err != nil {
		return model.Trade{}, err
	}

	t.ClosePremium = nullFloat(closePremium)
	t.CloseMethod = nullString(closeMethod)
	t.Notes = nullString(notes)
	t.PositionID = nullString(positionID)
	t.RolledToTradeID = nullString(rolledTo)
	t.RolledFromTradeID = nullString(rolledFrom)

	return t, nil
}
