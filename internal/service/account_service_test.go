package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/testutil"
)

// TestAccountService_GetSettings tests reading the singleton settings row.
//
// WHY: The row is seeded by the migrations, so a fresh database must already
// answer with zeroed capital rather than a not-found error.
func TestAccountService_GetSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAccountService(t, db)

	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() returned unexpected error: %v", err)
	}

	if settings.TotalCapital != 0 || settings.CashAvailable != 0 {
		t.Errorf("Expected zeroed fresh settings, got %+v", settings)
	}
}

// TestAccountService_UpdateSettings tests overwriting the capital figures.
//
// WHY: Both figures are overwritten together and negatives are rejected
// before anything is written.
func TestAccountService_UpdateSettings(t *testing.T) {
	t.Run("overwrites both figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		settings, err := svc.UpdateSettings(context.Background(), 100000, 40000)
		if err != nil {
			t.Fatalf("UpdateSettings() returned unexpected error: %v", err)
		}

		if settings.TotalCapital != 100000 || settings.CashAvailable != 40000 {
			t.Errorf("Expected 100000/40000, got %+v", settings)
		}
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		if _, err := svc.UpdateSettings(context.Background(), -1, 0); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount for negative total, got %v", err)
		}
		if _, err := svc.UpdateSettings(context.Background(), 0, -1); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount for negative cash, got %v", err)
		}
	})
}

// TestAccountService_Deposit tests adding cash.
//
// WHY: A deposit raises total capital and cash available by the same amount.
func TestAccountService_Deposit(t *testing.T) {
	t.Run("adds to both figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)
		testutil.SetAccount(t, db, 50000, 20000)

		settings, err := svc.Deposit(context.Background(), 5000)
		if err != nil {
			t.Fatalf("Deposit() returned unexpected error: %v", err)
		}

		if settings.TotalCapital != 55000 || settings.CashAvailable != 25000 {
			t.Errorf("Expected 55000/25000, got %+v", settings)
		}
	})

	t.Run("rejects a negative deposit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		if _, err := svc.Deposit(context.Background(), -100); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})
}

// TestAccountService_Withdraw tests removing cash.
//
// WHY: A withdrawal may never exceed the cash on hand; overdrawing must be
// refused without touching the stored figures.
func TestAccountService_Withdraw(t *testing.T) {
	t.Run("subtracts from both figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)
		testutil.SetAccount(t, db, 50000, 20000)

		settings, err := svc.Withdraw(context.Background(), 5000)
		if err != nil {
			t.Fatalf("Withdraw() returned unexpected error: %v", err)
		}

		if settings.TotalCapital != 45000 || settings.CashAvailable != 15000 {
			t.Errorf("Expected 45000/15000, got %+v", settings)
		}
	})

	t.Run("rejects overdrawing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)
		testutil.SetAccount(t, db, 50000, 1000)

		if _, err := svc.Withdraw(context.Background(), 2000); !errors.Is(err, apperrors.ErrInsufficientCash) {
			t.Errorf("Expected ErrInsufficientCash, got %v", err)
		}

		// Figures untouched after the refusal
		settings, err := svc.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() returned unexpected error: %v", err)
		}
		if settings.TotalCapital != 50000 || settings.CashAvailable != 1000 {
			t.Errorf("Expected figures unchanged after refused withdrawal, got %+v", settings)
		}
	})
}
