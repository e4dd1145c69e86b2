package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the money path. Handlers map these onto HTTP codes.
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrPayoutNotFound      = errors.New("payout transaction not found")
	ErrProviderUnderfunded = errors.New("provider float balance too low to fund this transfer")
)

// ValidationError rejects a request before any side effect.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientFundsError carries the shortfall detail for the caller.
type InsufficientFundsError struct {
	Available float64
	Required  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %.2f, required %.2f", e.Available, e.Required)
}

// DuplicateRequestError rejects a re-submission inside the guard window.
type DuplicateRequestError struct {
	WaitSeconds int
	PriorId     int
	PriorStatus string
	PriorAmount float64
}

func (e *DuplicateRequestError) Error() string {
	return fmt.Sprintf("a transfer of %.2f to the same account was submitted %s; retry after %d seconds",
		e.PriorAmount, e.PriorStatus, e.WaitSeconds)
}

// ProviderRejectedError is an explicit failure from the provider after funds
// were reserved. It is always paired with a refund.
type ProviderRejectedError struct {
	Reason string
}

func (e *ProviderRejectedError) Error() string {
	return "provider rejected transfer: " + e.Reason
}

// InternalFailureError covers ledger or transaction-record write errors.
type InternalFailureError struct {
	Op  string
	Err error
}

func (e *InternalFailureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalFailureError) Unwrap() error {
	return e.Err
}
