package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/BaharRaf/trading/internal/domain"
)

// maxBodyBytes caps request bodies. Trade and customer requests are
// small JSON documents; anything larger is not a legitimate client.
const maxBodyBytes = 1 << 20

// WriteJSON writes data as a JSON response with the given status code.
// Decimal fields marshal as quoted strings, keeping 4-decimal prices
// exact on the wire.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorResponse is the wire shape of every error: a machine-readable
// code plus a message precise enough to display as-is.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standard error response.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{Error: errorCode, Message: message})
}

// ParseJSON decodes the request body into v, rejecting unknown fields,
// empty bodies, and trailing data. Failures come back as
// *domain.ValidationError so handlers route them through mapError like
// any other validation failure. Content-Type is already enforced by the
// contentTypeJSON middleware.
func ParseJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.ValidationError{Message: "request body is required"}
		}
		return &domain.ValidationError{Message: fmt.Sprintf("malformed request body: %v", err)}
	}
	if dec.More() {
		return &domain.ValidationError{Message: "request body must be a single JSON document"}
	}
	return nil
}
