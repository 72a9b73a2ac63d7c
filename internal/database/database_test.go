package database_test

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/database"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

// TestMigrate tests the migration chain.
//
// WHY: Migrations are the only schema authority. They must apply cleanly on
// a fresh database, record their version, and be safe to re-run.
func TestMigrate(t *testing.T) {
	t.Run("applies cleanly and records the version", func(t *testing.T) {
		db := openMigrated(t)

		version, err := database.SchemaVersion(db)
		if err != nil {
			t.Fatalf("SchemaVersion() returned unexpected error: %v", err)
		}

		if version < 2 {
			t.Errorf("Expected schema version >= 2, got %d", version)
		}
	})

	t.Run("is a no-op when re-run", func(t *testing.T) {
		db := openMigrated(t)

		if err := database.Migrate(db); err != nil {
			t.Errorf("Re-running migrations returned unexpected error: %v", err)
		}
	})

	t.Run("seeds the singleton account settings row", func(t *testing.T) {
		db := openMigrated(t)

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM account_settings WHERE id = 'default'`).Scan(&count); err != nil {
			t.Fatalf("Failed to query account_settings: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected exactly one seeded settings row, got %d", count)
		}
	})

	t.Run("defaults action for rows written before the action column", func(t *testing.T) {
		db := openMigrated(t)

		// Insert without naming the action column, as pre-migration code did
		_, err := db.Exec(`
			INSERT INTO trades (id, ticker, type, strike, expiration, premium, quantity, open_date, status)
			VALUES ('legacy-trade', 'AAPL', 'PUT', 50, '2026-10-16', 1.5, 1, '2026-08-01T00:00:00Z', 'OPEN')
		`)
		if err != nil {
			t.Fatalf("Failed to insert legacy-shaped row: %v", err)
		}

		var action string
		if err := db.QueryRow(`SELECT action FROM trades WHERE id = 'legacy-trade'`).Scan(&action); err != nil {
			t.Fatalf("Failed to read action: %v", err)
		}
		if action != "SELL_TO_OPEN" {
			t.Errorf("Expected action to default to SELL_TO_OPEN, got %s", action)
		}
	})
}
