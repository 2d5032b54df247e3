// Package exchange talks to the external quote/execution service. The
// exchange is a black box: it is the authoritative source of prices and
// the only place where real trades happen. Its search API is
// company-name-oriented; exact lookup by ticker is not guaranteed.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
)

// Gateway is the exchange collaborator seen by the services. Execute
// calls move real money and are never retried by callers: a retry could
// double-execute against the exchange.
type Gateway interface {
	SearchQuotesByCompanyName(ctx context.Context, query string) ([]domain.Quote, error)
	ExecuteBuy(ctx context.Context, symbol string, shares int64) (decimal.Decimal, error)
	ExecuteSell(ctx context.Context, symbol string, shares int64) (decimal.Decimal, error)
}

// Client implements Gateway over the exchange's HTTP API with a bounded
// per-request timeout. Transport failures, non-2xx responses, malformed
// bodies, and null prices are all reported the same way; the caller
// cannot tell them apart and must not try.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the exchange at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// quotePayload is the wire form of a quote. last_trade_price is null
// when the exchange has no price for the listing.
type quotePayload struct {
	Symbol         string           `json:"symbol"`
	CompanyName    string           `json:"company_name"`
	LastTradePrice *decimal.Decimal `json:"last_trade_price"`
	StockExchange  string           `json:"stock_exchange"`
}

type executionRequest struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

type executionResponse struct {
	Price *decimal.Decimal `json:"price"`
}

// SearchQuotesByCompanyName queries the exchange for listings matching
// the given company-name query.
func (c *Client) SearchQuotesByCompanyName(ctx context.Context, query string) ([]domain.Quote, error) {
	u := fmt.Sprintf("%s/quotes?company=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("exchange search: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange search: unexpected status %d", resp.StatusCode)
	}

	var payload []quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("exchange search: decode response: %w", err)
	}

	quotes := make([]domain.Quote, len(payload))
	for i, p := range payload {
		q := domain.Quote{
			Symbol:        p.Symbol,
			CompanyName:   p.CompanyName,
			StockExchange: p.StockExchange,
		}
		if p.LastTradePrice != nil {
			q.LastTradePrice = *p.LastTradePrice
		}
		quotes[i] = q
	}
	return quotes, nil
}

// ExecuteBuy buys shares on the exchange and returns the actual
// execution price. Any failure maps to domain.ErrExternalExecution;
// whether the exchange executed before failing is unknowable here.
func (c *Client) ExecuteBuy(ctx context.Context, symbol string, shares int64) (decimal.Decimal, error) {
	return c.execute(ctx, "buy", symbol, shares)
}

// ExecuteSell sells shares on the exchange and returns the actual
// execution price.
func (c *Client) ExecuteSell(ctx context.Context, symbol string, shares int64) (decimal.Decimal, error) {
	return c.execute(ctx, "sell", symbol, shares)
}

func (c *Client) execute(ctx context.Context, side, symbol string, shares int64) (decimal.Decimal, error) {
	body, err := json.Marshal(executionRequest{Symbol: symbol, Shares: shares})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: encode %s request: %v", domain.ErrExternalExecution, side, err)
	}

	u := fmt.Sprintf("%s/executions/%s", c.baseURL, side)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %s: %v", domain.ErrExternalExecution, side, symbol, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %s: %v", domain.ErrExternalExecution, side, symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: %s %s: unexpected status %d",
			domain.ErrExternalExecution, side, symbol, resp.StatusCode)
	}

	var payload executionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %s: decode response: %v",
			domain.ErrExternalExecution, side, symbol, err)
	}
	if payload.Price == nil || !payload.Price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s %s: exchange returned no price",
			domain.ErrExternalExecution, side, symbol)
	}
	return *payload.Price, nil
}
