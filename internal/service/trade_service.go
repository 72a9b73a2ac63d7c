package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/api/request"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/repository"
)

// TradeService implements the trade lifecycle: a trade is created OPEN and
// moves exactly once into CLOSED, EXPIRED, ASSIGNED or ROLLED. The four
// terminal statuses are absorbing; every lifecycle operation checks the
// current status before mutating.
type TradeService struct {
	db           *sql.DB
	tradeRepo    *repository.TradeRepository
	positionRepo *repository.PositionRepository
}

// NewTradeService creates a new TradeService with the provided dependencies.
// The raw database handle is needed for the roll operation, which wraps two
// writes in one transaction.
func NewTradeService(
	db *sql.DB,
	tradeRepo *repository.TradeRepository,
	positionRepo *repository.PositionRepository,
) *TradeService {
	return &TradeService{
		db:           db,
		tradeRepo:    tradeRepo,
		positionRepo: positionRepo,
	}
}

// CreateTrade records a new option trade with status OPEN. The ticker is
// normalized to upper case; openDate defaults to now when not supplied.
func (s *TradeService) CreateTrade(ctx context.Context, req request.CreateTradeRequest) (*model.Trade, error) {
	trade, err := buildTrade(req)
	if err != nil {
		return nil, err
	}

	if err := s.tradeRepo.InsertTrade(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	return trade, nil
}

// GetTrade retrieves a single trade by its ID.
func (s *TradeService) GetTrade(tradeID string) (model.Trade, error) {
	return s.tradeRepo.GetTrade(tradeID)
}

// GetTrades retrieves all trades, or the trades for one ticker when ticker is
// non-empty, ordered by open date descending.
func (s *TradeService) GetTrades(ticker string) ([]model.Trade, error) {
	return s.tradeRepo.GetTrades(model.TradeFilter{Ticker: strings.ToUpper(ticker)})
}

// GetActiveTradesByTicker retrieves the OPEN trades for a ticker ordered by
// expiration ascending.
func (s *TradeService) GetActiveTradesByTicker(ticker string) ([]model.Trade, error) {
	return s.tradeRepo.GetActiveTradesByTicker(strings.ToUpper(ticker))
}

// UpdateTrade applies a free-form field patch. It deliberately does not
// enforce the state machine so that data-entry mistakes can be corrected, but
// it always refreshes updatedAt.
func (s *TradeService) UpdateTrade(ctx context.Context, tradeID string, req request.UpdateTradeRequest) (*model.Trade, error) {
	update, err := buildTradeUpdate(req)
	if err != nil {
		return nil, err
	}

	if err := s.tradeRepo.UpdateTrade(ctx, tradeID, update); err != nil {
		return nil, err
	}

	trade, err := s.tradeRepo.GetTrade(tradeID)
	if err != nil {
		return nil, err
	}

	return &trade, nil
}

// CloseTrade closes an OPEN trade by buying it back at the given premium.
// Returns apperrors.ErrTradeNotFound if the trade does not exist and
// apperrors.ErrTradeNotOpen if it has already reached a terminal status.
func (s *TradeService) CloseTrade(ctx context.Context, tradeID string, closePremium float64) (*model.Trade, error) {
	return s.CloseTradeWithMethod(ctx, tradeID, model.CloseMethodBuyback, &closePremium, nil)
}

// CloseTradeWithMethod closes an OPEN trade with the given method.
//
//   - BUYBACK requires closePremium and yields status CLOSED.
//   - EXPIRED forces closePremium to 0 (the contract lapsed worthless, the
//     full premium is retained) and yields status EXPIRED.
//   - ASSIGNED requires the ID of an existing position and yields status
//     ASSIGNED. The caller is responsible for creating the position record
//     first; the engine never creates one, since the user may attach an
//     existing lot.
func (s *TradeService) CloseTradeWithMethod(ctx context.Context, tradeID, method string, closePremium *float64, positionID *string) (*model.Trade, error) {
	trade, err := s.tradeRepo.GetTrade(tradeID)
	if err != nil {
		return nil, err
	}
	if trade.Status != model.TradeStatusOpen {
		return nil, apperrors.ErrTradeNotOpen
	}

	now := time.Now().UTC()
	update := repository.TradeUpdate{
		CloseDate:   &now,
		CloseMethod: &method,
	}

	switch method {
	case model.CloseMethodBuyback:
		if closePremium == nil {
			return nil, apperrors.ErrMissingClosePremium
		}
		status := model.TradeStatusClosed
		update.Status = &status
		update.ClosePremium = closePremium

	case model.CloseMethodExpired:
		status := model.TradeStatusExpired
		zero := 0.0
		update.Status = &status
		update.ClosePremium = &zero

	case model.CloseMethodAssigned:
		if positionID == nil {
			return nil, apperrors.ErrMissingPositionID
		}
		if _, err := s.positionRepo.GetPosition(*positionID); err != nil {
			return nil, err
		}
		status := model.TradeStatusAssigned
		update.Status = &status
		update.PositionID = positionID

	default:
		return nil, apperrors.ErrInvalidCloseMethod
	}

	if err := s.tradeRepo.UpdateTrade(ctx, tradeID, update); err != nil {
		return nil, err
	}

	updated, err := s.tradeRepo.GetTrade(tradeID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// AssignTrade marks an OPEN trade assigned and links the given position.
func (s *TradeService) AssignTrade(ctx context.Context, tradeID, positionID string) (*model.Trade, error) {
	return s.CloseTradeWithMethod(ctx, tradeID, model.CloseMethodAssigned, nil, &positionID)
}

// RollTrade replaces an OPEN trade with a new one: the new trade is created
// OPEN, the old trade becomes ROLLED with closeMethod ROLL, and the two are
// linked in both directions. Both writes run in one transaction so a failure
// can never leave a dangling roll link.
func (s *TradeService) RollTrade(ctx context.Context, oldTradeID string, req request.CreateTradeRequest) (*model.Trade, error) {
	oldTrade, err := s.tradeRepo.GetTrade(oldTradeID)
	if err != nil {
		return nil, err
	}
	if oldTrade.Status != model.TradeStatusOpen {
		return nil, apperrors.ErrTradeNotOpen
	}

	newTrade, err := buildTrade(req)
	if err != nil {
		return nil, err
	}
	newTrade.RolledFromTradeID = &oldTrade.ID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin roll transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	txRepo := s.tradeRepo.WithTx(tx)

	if err := txRepo.InsertTrade(ctx, newTrade); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rolled := model.TradeStatusRolled
	rollMethod := model.CloseMethodRoll
	oldUpdate := repository.TradeUpdate{
		Status:          &rolled,
		CloseDate:       &now,
		CloseMethod:     &rollMethod,
		RolledToTradeID: &newTrade.ID,
	}
	if err := txRepo.UpdateTrade(ctx, oldTradeID, oldUpdate); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit roll transaction: %w", err)
	}

	created, err := s.tradeRepo.GetTrade(newTrade.ID)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// DeleteTrade removes a trade unconditionally. Linked positions and roll
// partners are left untouched; dangling references are accepted.
func (s *TradeService) DeleteTrade(ctx context.Context, tradeID string) error {
	return s.tradeRepo.DeleteTrade(ctx, tradeID)
}

// buildTrade converts a creation request into a new OPEN trade.
func buildTrade(req request.CreateTradeRequest) (*model.Trade, error) {
	expiration, err := time.Parse("2006-01-02", req.Expiration)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expiration: %w", err)
	}

	now := time.Now().UTC()
	openDate := now
	if req.OpenDate != nil {
		openDate, err = time.Parse("2006-01-02", *req.OpenDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse openDate: %w", err)
		}
	}

	return &model.Trade{
		ID:         uuid.New().String(),
		Ticker:     strings.ToUpper(req.Ticker),
		Type:       req.Type,
		Action:     req.Action,
		Strike:     req.Strike,
		Expiration: expiration,
		Premium:    req.Premium,
		Quantity:   req.Quantity,
		OpenDate:   openDate,
		Status:     model.TradeStatusOpen,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// buildTradeUpdate converts an update request into an explicit repository
// field patch, parsing dates and normalizing the ticker.
func buildTradeUpdate(req request.UpdateTradeRequest) (repository.TradeUpdate, error) {
	update := repository.TradeUpdate{
		Type:              req.Type,
		Action:            req.Action,
		Strike:            req.Strike,
		Premium:           req.Premium,
		Quantity:          req.Quantity,
		ClosePremium:      req.ClosePremium,
		CloseMethod:       req.CloseMethod,
		Status:            req.Status,
		Notes:             req.Notes,
		PositionID:        req.PositionID,
		RolledToTradeID:   req.RolledToTradeID,
		RolledFromTradeID: req.RolledFromTradeID,
	}

	if req.Ticker != nil {
		upper := strings.ToUpper(*req.Ticker)
		update.Ticker = &upper
	}

	for _, d := range []struct {
		src *string
		dst **time.Time
	}{
		{req.Expiration, &update.Expiration},
		{req.OpenDate, &update.OpenDate},
		{req.CloseDate, &update.CloseDate},
	} {
		if d.src == nil {
			continue
		}
		t, err := time.Parse("2006-01-02", *d.src)
		if err != nil {
			return repository.TradeUpdate{}, fmt.Errorf("failed to parse date: %w", err)
		}
		*d.dst = &t
	}

	return update, nil
}
