package bank

import "errors"

// Precondition violations. Business refusals (insufficient funds, a deposit
// that forbids withdrawals) are reported as false results, not errors.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrNotReplenishable  = errors.New("term deposit is not replenishable")
	ErrRateOutOfRange    = errors.New("interest rate out of range")
	ErrTermTooShort      = errors.New("term too short")
	ErrBelowMinBalance   = errors.New("opening amount below minimum balance")
	ErrProductLimit      = errors.New("product limit reached for client at this bank")
	ErrInvalidClientData = errors.New("invalid client identity data")
	ErrInvalidCredit     = errors.New("invalid credit parameters")
)
