package domain

import "errors"

// Sentinel errors for domain-level error handling. Callers attach
// context (symbol, quantities, amounts) by wrapping with fmt.Errorf
// and %w; the handler layer maps these to HTTP status codes.
var (
	ErrAccessDenied          = errors.New("access_denied")
	ErrIdentityNotFound      = errors.New("identity_not_found")
	ErrCustomerAlreadyExists = errors.New("customer_already_exists")
	ErrCustomerNotFound      = errors.New("customer_not_found")
	ErrStockNotFound         = errors.New("stock_not_found")
	ErrPositionNotFound      = errors.New("position_not_found")
	ErrInsufficientFunds     = errors.New("insufficient_funds")
	ErrInsufficientShares    = errors.New("insufficient_shares")
	ErrExternalExecution     = errors.New("external_execution_failed")
	ErrConcurrencyConflict   = errors.New("concurrency_conflict")

	// ErrPostExecutionCommit marks the one genuinely bad outcome: the
	// exchange already executed the trade but the internal commit failed,
	// so external and internal state have diverged. It is surfaced loudly
	// and never retried; reconciliation is a manual operation.
	ErrPostExecutionCommit = errors.New("post_execution_commit_failure")

	// ErrVersionConflict is returned by stores when a versioned write
	// loses an optimistic-concurrency race. Services retry a bounded
	// number of times before surfacing ErrConcurrencyConflict.
	ErrVersionConflict = errors.New("version_conflict")
)

// ValidationError represents a request validation failure
// (non-positive quantity, blank symbol, malformed input).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
