package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
)

func TestClient_SearchQuotesByCompanyName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quotes" {
			t.Errorf("path = %q, want /quotes", r.URL.Path)
		}
		if got := r.URL.Query().Get("company"); got != "Acme Corporation" {
			t.Errorf("company query = %q, want %q", got, "Acme Corporation")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"symbol":"ACME","company_name":"Acme Corporation","last_trade_price":"42.5000","stock_exchange":"NYSE"},
			{"symbol":"ACMX","company_name":"Acme Explosives","last_trade_price":null,"stock_exchange":"NYSE"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	quotes, err := c.SearchQuotesByCompanyName(context.Background(), "Acme Corporation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("len(quotes) = %d, want 2", len(quotes))
	}
	if quotes[0].Symbol != "ACME" || !quotes[0].LastTradePrice.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("quote[0] = %+v, want ACME at 42.5", quotes[0])
	}
	if quotes[1].HasPrice() {
		t.Error("null last_trade_price should map to a priceless quote")
	}
}

func TestClient_SearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.SearchQuotesByCompanyName(context.Background(), "Acme"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestClient_ExecuteBuy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/executions/buy" {
			t.Errorf("path = %q, want /executions/buy", r.URL.Path)
		}
		var req executionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Symbol != "ACME" || req.Shares != 10 {
			t.Errorf("request = %+v, want ACME/10", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"price":"20.1000"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	price, err := c.ExecuteBuy(context.Background(), "ACME", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("20.1")) {
		t.Errorf("price = %s, want 20.1", price)
	}
}

func TestClient_ExecuteFailuresMapToExternalExecution(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"error status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"null price", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"price":null}`))
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, time.Second)
			_, err := c.ExecuteSell(context.Background(), "ACME", 5)
			if !errors.Is(err, domain.ErrExternalExecution) {
				t.Errorf("err = %v, want ErrExternalExecution", err)
			}
		})
	}
}

func TestClient_ExecuteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"price":"20.00"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	_, err := c.ExecuteBuy(context.Background(), "ACME", 1)
	if !errors.Is(err, domain.ErrExternalExecution) {
		t.Errorf("timeout err = %v, want ErrExternalExecution", err)
	}
}
