package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/repository"
)

// PriceService manages the manually refreshed per-ticker price snapshots.
type PriceService struct {
	priceRepo *repository.PriceRepository
}

// NewPriceService creates a new PriceService with the provided repository dependency.
func NewPriceService(priceRepo *repository.PriceRepository) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
	}
}

// UpsertPrice merges the supplied fields into the snapshot for a ticker.
// Fields absent from the request keep their previously stored value.
func (s *PriceService) UpsertPrice(ctx context.Context, req request.UpsertPriceRequest) (*model.CurrentPrice, error) {
	price := &model.CurrentPrice{
		Ticker:      strings.ToUpper(req.Ticker),
		StockPrice:  req.StockPrice,
		OptionPrice: req.OptionPrice,
		Strike:      req.Strike,
		OptionType:  req.OptionType,
	}

	if req.Expiration != nil {
		expiration, err := time.Parse("2006-01-02", *req.Expiration)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expiration: %w", err)
		}
		price.Expiration = &expiration
	}

	if err := s.priceRepo.UpsertPrice(ctx, price); err != nil {
		return nil, err
	}

	updated, err := s.priceRepo.GetPrice(price.Ticker)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// BulkUpsertPrices applies several snapshot updates and returns how many were
// written. Entries without a ticker are skipped.
func (s *PriceService) BulkUpsertPrices(ctx context.Context, reqs []request.UpsertPriceRequest) (int, error) {
	count := 0
	for _, req := range reqs {
		if strings.TrimSpace(req.Ticker) == "" {
			continue
		}
		if _, err := s.UpsertPrice(ctx, req); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// GetPrice retrieves the snapshot for one ticker.
func (s *PriceService) GetPrice(ticker string) (model.CurrentPrice, error) {
	return s.priceRepo.GetPrice(strings.ToUpper(ticker))
}

// GetAllPrices retrieves every snapshot.
func (s *PriceService) GetAllPrices() ([]model.CurrentPrice, error) {
	return s.priceRepo.GetAllPrices()
}
