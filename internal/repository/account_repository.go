package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
)

// settingsRowID is the primary key of the singleton account_settings row,
// seeded by the initial migration.
const settingsRowID = "default"

// AccountRepository provides data access methods for the account_settings
// singleton.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetSettings retrieves the account settings row.
// Returns apperrors.ErrAccountSettingsNotFound if the seed row is missing.
func (r *AccountRepository) GetSettings() (model.AccountSettings, error) {
	query := `SELECT id, total_capital, cash_available, updated_at FROM account_settings WHERE id = ?`

	var s model.AccountSettings
	var updatedAtStr string

	err := r.db.QueryRow(query, settingsRowID).Scan(
		&s.ID,
		&s.TotalCapital,
		&s.CashAvailable,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.AccountSettings{}, apperrors.ErrAccountSettingsNotFound
	}
	if err != nil {
		return model.AccountSettings{}, fmt.Errorf("failed to scan account_settings results: %w", err)
	}

	if s.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.AccountSettings{}, err
	}

	return s, nil
}

// UpdateSettings overwrites both capital figures on the singleton row.
func (r *AccountRepository) UpdateSettings(ctx context.Context, totalCapital, cashAvailable float64) error {
	query := `UPDATE account_settings SET total_capital = ?, cash_available = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		totalCapital,
		cashAvailable,
		timeArg(time.Now()),
		settingsRowID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account_settings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrAccountSettingsNotFound
	}

	return nil
}
