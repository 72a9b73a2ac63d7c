package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/repository"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/service"
)

func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	return service.NewTradeService(
		db,
		tradeRepo,
		positionRepo,
	)
}

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)

	return service.NewPositionService(
		positionRepo,
	)
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	accountRepo := repository.NewAccountRepository(db)

	return service.NewAccountService(
		accountRepo,
	)
}

func NewTestPriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()

	priceRepo := repository.NewPriceRepository(db)

	return service.NewPriceService(
		priceRepo,
	)
}

func NewTestMetricsService(t *testing.T, db *sql.DB) *service.MetricsService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewMetricsService(
		tradeRepo,
		positionRepo,
		accountRepo,
		priceRepo,
	)
}

func NewTestAllocationService(t *testing.T, db *sql.DB) *service.AllocationService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	return service.NewAllocationService(
		tradeRepo,
		positionRepo,
	)
}

// MakeID generates a unique UUID for test entities.
func MakeID() string {
	return uuid.New().String()
}

// MakeTicker generates a unique ticker symbol so parallel tests never
// collide on the current_prices primary key.
func MakeTicker() string {
	return "T" + randomAlphanumeric(4)
}

func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
