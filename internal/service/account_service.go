package service

import (
	"context"

	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/apperrors"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/model"
	"github.com/wheeltracker/Options-Wheel-Tracker-Backend/internal/repository"
)

// AccountService manages the singleton account settings record.
type AccountService struct {
	accountRepo *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository dependency.
func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

// GetSettings retrieves the account settings.
func (s *AccountService) GetSettings() (model.AccountSettings, error) {
	return s.accountRepo.GetSettings()
}

// UpdateSettings overwrites both capital figures directly.
func (s *AccountService) UpdateSettings(ctx context.Context, totalCapital, cashAvailable float64) (*model.AccountSettings, error) {
	if totalCapital < 0 || cashAvailable < 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	if err := s.accountRepo.UpdateSettings(ctx, totalCapital, cashAvailable); err != nil {
		return nil, err
	}

	settings, err := s.accountRepo.GetSettings()
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// Deposit adds cash to the account, raising both total capital and available
// cash.
func (s *AccountService) Deposit(ctx context.Context, amount float64) (*model.AccountSettings, error) {
	if amount <= 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	settings, err := s.accountRepo.GetSettings()
	if err != nil {
		return nil, err
	}

	return s.UpdateSettings(ctx, settings.TotalCapital+amount, settings.CashAvailable+amount)
}

// Withdraw removes cash from the account. Only cash not reserved as
// collateral can leave, so the withdrawal is capped by cashAvailable.
func (s *AccountService) Withdraw(ctx context.Context, amount float64) (*model.AccountSettings, error) {
	if amount <= 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	settings, err := s.accountRepo.GetSettings()
	if err != nil {
		return nil, err
	}
	if amount > settings.CashAvailable {
		return nil, apperrors.ErrInsufficientCash
	}

	return s.UpdateSettings(ctx, settings.TotalCapital-amount, settings.CashAvailable-amount)
}
