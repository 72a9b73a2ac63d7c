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

const positionColumns = `id, ticker, shares, cost_basis, acquired_date, sold_date,
	sold_price, status, acquisition_type, notes, created_at, updated_at`

// PositionRepository provides data access methods for the positions table.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PositionRepository) getQuerier() interface {
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

// InsertPosition writes a new position row.
func (r *PositionRepository) InsertPosition(ctx context.Context, p *model.Position) error {
	query := `
		INSERT INTO positions (` + positionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.Ticker,
		p.Shares,
		p.CostBasis,
		dateArg(p.AcquiredDate),
		timePtrArg(p.SoldDate),
		floatPtrArg(p.SoldPrice),
		p.Status,
		p.AcquisitionType,
		stringPtrArg(p.Notes),
		timeArg(p.CreatedAt),
		timeArg(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}

	return nil
}

// GetPosition retrieves a single position by ID.
// Returns apperrors.ErrPositionNotFound if no row exists.
func (r *PositionRepository) GetPosition(positionID string) (model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = ?`

	row := r.getQuerier().QueryRow(query, positionID)
	p, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan positions table results: %w", err)
	}

	return p, nil
}

// GetPositions retrieves positions matching the filter, ordered by acquired
// date descending. An empty filter returns every position.
func (r *PositionRepository) GetPositions(filter model.PositionFilter) ([]model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions`

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
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY acquired_date DESC"

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan positions table results: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions table: %w", err)
	}

	return positions, nil
}

// PositionUpdate describes a partial update of a position row. Nil fields are
// left untouched; columns are enumerated explicitly.
type PositionUpdate struct {
	Ticker          *string
	Shares          *int
	CostBasis       *float64
	AcquiredDate    *time.Time
	SoldDate        *time.Time
	SoldPrice       *float64
	Status          *string
	AcquisitionType *string
	Notes           *string
}

func (u PositionUpdate) setClauses() ([]string, []any) {
	var clauses []string
	var args []any

	if u.Ticker != nil {
		clauses = append(clauses, "ticker = ?")
		args = append(args, *u.Ticker)
	}
	if u.Shares != nil {
		clauses = append(clauses, "shares = ?")
		args = append(args, *u.Shares)
	}
	if u.CostBasis != nil {
		clauses = append(clauses, "cost_basis = ?")
		args = append(args, *u.CostBasis)
	}
	if u.AcquiredDate != nil {
		clauses = append(clauses, "acquired_date = ?")
		args = append(args, dateArg(*u.AcquiredDate))
	}
	if u.SoldDate != nil {
		clauses = append(clauses, "sold_date = ?")
		args = append(args, timeArg(*u.SoldDate))
	}
	if u.SoldPrice != nil {
		clauses = append(clauses, "sold_price = ?")
		args = append(args, *u.SoldPrice)
	}
	if u.Status != nil {
		clauses = append(clauses, "status = ?")
		args = append(args, *u.Status)
	}
	if u.AcquisitionType != nil {
		clauses = append(clauses, "acquisition_type = ?")
		args = append(args, *u.AcquisitionType)
	}
	if u.Notes != nil {
		clauses = append(clauses, "notes = ?")
		args = append(args, *u.Notes)
	}

	return clauses, args
}

// UpdatePosition applies a partial update and always refreshes updated_at.
// Returns apperrors.ErrPositionNotFound if no row with the given ID exists.
func (r *PositionRepository) UpdatePosition(ctx context.Context, positionID string, update PositionUpdate) error {
	clauses, args := update.setClauses()

	clauses = append(clauses, "updated_at = ?")
	args = append(args, timeArg(time.Now()))
	args = append(args, positionID)

	query := `UPDATE positions SET ` + strings.Join(clauses, ", ") + ` WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrPositionNotFound
	}

	return nil
}

// DeletePosition removes a position row by ID. A hard delete: trades that
// reference the position keep their (now dangling) link.
// Returns apperrors.ErrPositionNotFound if no row with the given ID exists.
func (r *PositionRepository) DeletePosition(ctx context.Context, positionID string) error {
	query := `DELETE FROM positions WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrPositionNotFound
	}

	return nil
}

func scanPosition(s scanner) (model.Position, error) {
	var p model.Position
	var acquiredDateStr, createdAtStr, updatedAtStr string
	var soldDate, notes sql.NullString
	var soldPrice sql.NullFloat64

	err := s.Scan(
		&p.ID,
		&p.Ticker,
		&p.Shares,
		&p.CostBasis,
		&acquiredDateStr,
		&soldDate,
		&soldPrice,
		&p.Status,
		&p.AcquisitionType,
		&notes,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return model.Position{}, err
	}

	if p.AcquiredDate, err = ParseTime(acquiredDateStr); err != nil {
		return model.Position{}, err
	}
	if p.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Position{}, err
	}
	if p.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.Position{}, err
	}
	if p.SoldDate, err = parseNullTime(soldDate); err != nil {
		return model.Position{}, err
	}

	p.SoldPrice = nullFloat(soldPrice)
	p.Notes = nullString(notes)

	return p, nil
}
