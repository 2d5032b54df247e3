package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is an ephemeral price quote from the external exchange. Quotes
// are never persisted or cached; only the symbol → company-name mapping
// survives a resolution (see Stock).
type Quote struct {
	Symbol         string
	CompanyName    string
	LastTradePrice decimal.Decimal
	StockExchange  string
}

// HasPrice reports whether the exchange returned a usable price. The
// exchange signals "no price" as null, which the gateway maps to zero.
func (q Quote) HasPrice() bool {
	return q.LastTradePrice.IsPositive()
}

// Stock is a cached, non-authoritative symbol → company-name mapping
// used to work around the exchange's search-by-name-only API. Entries
// are created on first successful resolution and a populated company
// name is never overwritten.
type Stock struct {
	Symbol      string
	CompanyName string
}

// NormalizeSymbol canonicalizes a user-supplied ticker: trimmed and
// uppercased. Returns "" for blank input.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
