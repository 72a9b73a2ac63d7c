package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/repository"
)

// PositionService implements the share lot lifecycle: a position is created
// OPEN and can be sold exactly once. SOLD is absorbing.
type PositionService struct {
	positionRepo *repository.PositionRepository
}

// NewPositionService creates a new PositionService with the provided repository dependency.
func NewPositionService(positionRepo *repository.PositionRepository) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
	}
}

// CreatePosition records a new share lot with status OPEN.
func (s *PositionService) CreatePosition(ctx context.Context, req request.CreatePositionRequest) (*model.Position, error) {
	acquiredDate, err := time.Parse("2006-01-02", req.AcquiredDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse acquiredDate: %w", err)
	}

	now := time.Now().UTC()
	position := &model.Position{
		ID:              uuid.New().String(),
		Ticker:          strings.ToUpper(req.Ticker),
		Shares:          req.Shares,
		CostBasis:       req.CostBasis,
		AcquiredDate:    acquiredDate,
		Status:          model.PositionStatusOpen,
		AcquisitionType: req.AcquisitionType,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.positionRepo.InsertPosition(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	return position, nil
}

// GetPosition retrieves a single position by its ID.
func (s *PositionService) GetPosition(positionID string) (model.Position, error) {
	return s.positionRepo.GetPosition(positionID)
}

// GetPositions retrieves positions matching the optional ticker and status
// filters, ordered by acquired date descending.
func (s *PositionService) GetPositions(ticker, status string) ([]model.Position, error) {
	return s.positionRepo.GetPositions(model.PositionFilter{
		Ticker: strings.ToUpper(ticker),
		Status: status,
	})
}

// UpdatePosition applies a free-form field patch for corrections. Always
// refreshes updatedAt.
func (s *PositionService) UpdatePosition(ctx context.Context, positionID string, req request.UpdatePositionRequest) (*model.Position, error) {
	update := repository.PositionUpdate{
		Shares:          req.Shares,
		CostBasis:       req.CostBasis,
		SoldPrice:       req.SoldPrice,
		Status:          req.Status,
		AcquisitionType: req.AcquisitionType,
		Notes:           req.Notes,
	}

	if req.Ticker != nil {
		upper := strings.ToUpper(*req.Ticker)
		update.Ticker = &upper
	}
	for _, d := range []struct {
		src *string
		dst **time.Time
	}{
		{req.AcquiredDate, &update.AcquiredDate},
		{req.SoldDate, &update.SoldDate},
	} {
		if d.src == nil {
			continue
		}
		t, err := time.Parse("2006-01-02", *d.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		*d.dst = &t
	}

	if err := s.positionRepo.UpdatePosition(ctx, positionID, update); err != nil {
		return nil, err
	}

	position, err := s.positionRepo.GetPosition(positionID)
	if err != nil {
		return nil, err
	}

	return &position, nil
}

// SellPosition sells an OPEN share lot at the given price. soldDate defaults
// to now. Returns apperrors.ErrPositionNotOpen if the lot was already sold.
func (s *PositionService) SellPosition(ctx context.Context, positionID string, soldPrice float64, soldDate *string) (*model.Position, error) {
	position, err := s.positionRepo.GetPosition(positionID)
	if err != nil {
		return nil, err
	}
	if position.Status != model.PositionStatusOpen {
		return nil, apperrors.ErrPositionNotOpen
	}

	when := time.Now().UTC()
	if soldDate != nil {
		when, err = time.Parse("2006-01-02", *soldDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse soldDate: %w", err)
		}
	}

	sold := model.PositionStatusSold
	update := repository.PositionUpdate{
		Status:    &sold,
		SoldDate:  &when,
		SoldPrice: &soldPrice,
	}
	if err := s.positionRepo.UpdatePosition(ctx, positionID, update); err != nil {
		return nil, err
	}

	updated, err := s.positionRepo.GetPosition(positionID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeletePosition removes a position unconditionally. Trades that reference it
// keep their dangling link.
func (s *PositionService) DeletePosition(ctx context.Context, positionID string) error {
	return s.positionRepo.DeletePosition(ctx, positionID)
}
