package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTradeNotFound indicates that a trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrPositionNotFound indicates that a position with the given ID does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPriceNotFound indicates that no current price snapshot exists for the ticker.
	ErrPriceNotFound = errors.New("price snapshot not found")

	// ErrAccountSettingsNotFound indicates the singleton account settings row is missing.
	ErrAccountSettingsNotFound = errors.New("account settings not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrTradeNotOpen indicates a lifecycle operation was attempted on a trade
	// whose status is no longer OPEN. Terminal statuses are absorbing.
	ErrTradeNotOpen = errors.New("trade is not open")

	// ErrPositionNotOpen indicates a sell was attempted on an already-sold position.
	ErrPositionNotOpen = errors.New("position is not open")

	// ErrMissingClosePremium indicates a BUYBACK close without a close premium.
	ErrMissingClosePremium = errors.New("close premium is required for buyback")

	// ErrMissingPositionID indicates an ASSIGNED close without a position reference.
	ErrMissingPositionID = errors.New("position ID is required for assignment")

	// ErrInvalidCloseMethod indicates an unrecognized close method.
	ErrInvalidCloseMethod = errors.New("invalid close method")

	// ErrSharesNotLot indicates a share count that is not a multiple of 100.
	ErrSharesNotLot = errors.New("shares must be a multiple of 100")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInsufficientCash indicates a withdrawal larger than the available cash.
	ErrInsufficientCash = errors.New("insufficient cash available")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidTicker indicates an empty or malformed ticker symbol.
	ErrInvalidTicker = errors.New("ticker is required")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	// Trade operation errors
	ErrFailedToRetrieveTrades = errors.New("failed to retrieve trades")
	ErrFailedToRetrieveTrade  = errors.New("failed to retrieve trade")

	// Position operation errors
	ErrFailedToRetrievePositions = errors.New("failed to retrieve positions")
	ErrFailedToRetrievePosition  = errors.New("failed to retrieve position")

	// Analytics operation errors
	ErrFailedToComputeMetrics    = errors.New("failed to compute metrics")
	ErrFailedToComputeAllocation = errors.New("failed to compute allocation")
	ErrFailedToRetrieveTickers   = errors.New("failed to retrieve tickers")

	// Account operation errors
	ErrFailedToRetrieveAccount = errors.New("failed to retrieve account settings")
	ErrFailedToUpdateAccount   = errors.New("failed to update account settings")

	// Price operation errors
	ErrFailedToRetrievePrices = errors.New("failed to retrieve prices")
	ErrFailedToUpdatePrice    = errors.New("failed to update price")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
