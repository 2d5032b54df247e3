package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
)

func TestWriteJSON_DecimalsAsStrings(t *testing.T) {
	type payload struct {
		Price decimal.Decimal `json:"price"`
	}
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, payload{Price: decimal.RequireFromString("23.3333")})

	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	// shopspring marshals as a quoted string, so the 4-decimal price
	// survives the wire exactly.
	if body := strings.TrimSpace(w.Body.String()); body != `{"price":"23.3333"}` {
		t.Errorf("body = %s, want {\"price\":\"23.3333\"}", body)
	}
}

func TestWriteError_Shape(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusUnprocessableEntity, "insufficient_shares", "ACME holds 3, requested 5")

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "insufficient_shares" {
		t.Errorf("error = %q, want insufficient_shares", resp.Error)
	}
	if resp.Message != "ACME holds 3, requested 5" {
		t.Errorf("message = %q, want the full context", resp.Message)
	}
}

func TestParseJSON_Valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"symbol":"ACME","quantity":15}`))

	var req struct {
		Symbol   string `json:"symbol"`
		Quantity int64  `json:"quantity"`
	}
	if err := ParseJSON(r, &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Symbol != "ACME" || req.Quantity != 15 {
		t.Errorf("parsed %+v, want ACME/15", req)
	}
}

func TestParseJSON_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed", `{"symbol":`},
		{"unknown field", `{"symbol":"ACME","leverage":10}`},
		{"trailing document", `{"symbol":"ACME"}{"symbol":"IBM"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var req struct {
				Symbol string `json:"symbol"`
			}
			err := ParseJSON(r, &req)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *domain.ValidationError", err)
			}
		})
	}
}

func TestParseJSON_ErrorIsValidationForMapError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))

	var req struct{}
	err := ParseJSON(r, &req)
	if err == nil {
		t.Fatal("expected error")
	}

	// The handler routes parse failures through mapError; they must
	// come out as 400 validation errors.
	w := httptest.NewRecorder()
	mapError(w, err)
	if w.Code != http.StatusBadRequest {
		t.Errorf("mapError status = %d, want 400", w.Code)
	}
}
