package handler

import (
	"errors"
	"net/http"

	"github.com/BaharRaf/trading/internal/domain"
)

// mapError maps domain errors to HTTP responses. The mapping is shared
// across all endpoints; services attach enough context to the wrapped
// sentinel for the message to stand on its own.
func mapError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		WriteError(w, http.StatusForbidden, "access_denied", err.Error())
	case errors.Is(err, domain.ErrIdentityNotFound):
		WriteError(w, http.StatusNotFound, "identity_not_found", err.Error())
	case errors.Is(err, domain.ErrCustomerNotFound):
		WriteError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, domain.ErrStockNotFound):
		WriteError(w, http.StatusNotFound, "stock_not_found", err.Error())
	case errors.Is(err, domain.ErrPositionNotFound):
		WriteError(w, http.StatusNotFound, "position_not_found", err.Error())
	case errors.Is(err, domain.ErrCustomerAlreadyExists):
		WriteError(w, http.StatusConflict, "customer_already_exists", err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		WriteError(w, http.StatusConflict, "concurrency_conflict", err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		WriteError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	case errors.Is(err, domain.ErrInsufficientShares):
		WriteError(w, http.StatusUnprocessableEntity, "insufficient_shares", err.Error())
	case errors.Is(err, domain.ErrExternalExecution):
		WriteError(w, http.StatusBadGateway, "external_execution_failed", err.Error())
	case errors.Is(err, domain.ErrPostExecutionCommit):
		// The exchange executed but the local commit failed. The error
		// text names the trade so operators can reconcile.
		WriteError(w, http.StatusInternalServerError, "post_execution_commit_failed", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
