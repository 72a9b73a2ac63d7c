package service

import (
	"strings"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/repository"
)

// AllocationService computes, per ticker, how many of the currently held open
// shares are already pledged as collateral for open covered calls. Pure read
// aggregation; nothing is persisted and every call recomputes from raw rows.
type AllocationService struct {
	tradeRepo    *repository.TradeRepository
	positionRepo *repository.PositionRepository
}

// NewAllocationService creates a new AllocationService with the provided repository dependencies.
func NewAllocationService(
	tradeRepo *repository.TradeRepository,
	positionRepo *repository.PositionRepository,
) *AllocationService {
	return &AllocationService{
		tradeRepo:    tradeRepo,
		positionRepo: positionRepo,
	}
}

// GetCoveredCallAllocation reports the covered-call share allocation for one
// ticker. Shares held come from OPEN positions; shares pledged come from OPEN
// SELL_TO_OPEN call trades at 100 shares per contract. Unallocated shares are
// clamped at zero so over-sold calls never produce a negative figure.
func (s *AllocationService) GetCoveredCallAllocation(ticker string) (model.CallAllocation, error) {
	ticker = strings.ToUpper(ticker)

	positions, err := s.positionRepo.GetPositions(model.PositionFilter{
		Ticker: ticker,
		Status: model.PositionStatusOpen,
	})
	if err != nil {
		return model.CallAllocation{}, err
	}

	totalShares := 0
	for _, p := range positions {
		totalShares += p.Shares
	}

	trades, err := s.tradeRepo.GetActiveTradesByTicker(ticker)
	if err != nil {
		return model.CallAllocation{}, err
	}

	allocatedShares := 0
	for _, t := range trades {
		if t.Type == model.OptionTypeCall && t.Action == model.ActionSellToOpen {
			allocatedShares += t.Quantity * model.SharesPerContract
		}
	}

	unallocatedShares := totalShares - allocatedShares
	if unallocatedShares < 0 {
		unallocatedShares = 0
	}

	return model.CallAllocation{
		Ticker:            ticker,
		TotalShares:       totalShares,
		AllocatedShares:   allocatedShares,
		UnallocatedShares: unallocatedShares,
		TotalLots:         float64(totalShares) / model.SharesPerContract,
		AllocatedLots:     float64(allocatedShares) / model.SharesPerContract,
		UnallocatedLots:   float64(unallocatedShares) / model.SharesPerContract,
	}, nil
}

// GetAllAllocations reports the covered-call allocation for every known
// ticker, keyed by ticker.
func (s *AllocationService) GetAllAllocations() (map[string]model.CallAllocation, error) {
	tickers, err := s.tradeRepo.GetAllTickers()
	if err != nil {
		return nil, err
	}

	allocations := make(map[string]model.CallAllocation, len(tickers))
	for _, ticker := range tickers {
		allocation, err := s.GetCoveredCallAllocation(ticker)
		if err != nil {
			return nil, err
		}
		allocations[ticker] = allocation
	}

	return allocations, nil
}
