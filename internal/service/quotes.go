package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/exchange"
	"github.com/BaharRaf/trading/internal/store"
)

// QuoteResolver turns a ticker into a live quote despite the exchange
// only supporting search by company name. Resolution order:
//
//  1. search using the symbol itself as the query, accept an exact
//     (case-insensitive) symbol match;
//  2. same lookup over the cached company name for the symbol, if any;
//  3. accept a lone-result match from either attempt (see
//     acceptLoneQuote).
//
// A successful resolution fills the symbol cache so later lookups can
// use the company name.
type QuoteResolver struct {
	gateway exchange.Gateway
	symbols *store.SymbolCache
	logger  *slog.Logger
}

// NewQuoteResolver creates a QuoteResolver.
func NewQuoteResolver(gateway exchange.Gateway, symbols *store.SymbolCache, logger *slog.Logger) *QuoteResolver {
	return &QuoteResolver{gateway: gateway, symbols: symbols, logger: logger}
}

// Resolve returns a live quote for the normalized symbol, or
// domain.ErrStockNotFound when no attempt yields a usable match.
func (r *QuoteResolver) Resolve(ctx context.Context, symbol string) (domain.Quote, error) {
	sym := domain.NormalizeSymbol(symbol)
	if sym == "" {
		return domain.Quote{}, &domain.ValidationError{Message: "symbol must not be blank"}
	}

	direct, err := r.gateway.SearchQuotesByCompanyName(ctx, sym)
	if err != nil {
		// Search failure is not fatal; the cached-name attempt may
		// still succeed.
		r.logger.Warn("quote search by symbol failed",
			slog.String("symbol", sym), slog.String("error", err.Error()))
		direct = nil
	}

	if q, ok := exactSymbolMatch(direct, sym); ok {
		r.symbols.Fill(sym, q.CompanyName)
		return q, nil
	}
	if q, ok := acceptLoneQuote(direct); ok {
		r.symbols.Fill(sym, q.CompanyName)
		return q, nil
	}

	if name, ok := r.symbols.CompanyName(sym); ok {
		byName, err := r.gateway.SearchQuotesByCompanyName(ctx, name)
		if err != nil {
			r.logger.Warn("quote search by cached company name failed",
				slog.String("symbol", sym), slog.String("company", name),
				slog.String("error", err.Error()))
		} else {
			if q, ok := exactSymbolMatch(byName, sym); ok {
				return q, nil
			}
			if q, ok := acceptLoneQuote(byName); ok {
				return q, nil
			}
		}
	}

	return domain.Quote{}, fmt.Errorf("%w: no quote for symbol %q", domain.ErrStockNotFound, sym)
}

// Search passes a company-name query through to the exchange, for
// clients browsing stocks before trading.
func (r *QuoteResolver) Search(ctx context.Context, query string) ([]domain.Quote, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &domain.ValidationError{Message: "search query must not be blank"}
	}
	quotes, err := r.gateway.SearchQuotesByCompanyName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", domain.ErrStockNotFound, query, err)
	}
	for _, q := range quotes {
		r.symbols.Fill(domain.NormalizeSymbol(q.Symbol), q.CompanyName)
	}
	return quotes, nil
}

// exactSymbolMatch returns the first quote whose symbol equals sym
// case-insensitively and that carries a price.
func exactSymbolMatch(quotes []domain.Quote, sym string) (domain.Quote, bool) {
	for _, q := range quotes {
		if strings.EqualFold(domain.NormalizeSymbol(q.Symbol), sym) && q.HasPrice() {
			return q, true
		}
	}
	return domain.Quote{}, false
}

// acceptLoneQuote accepts a result set of exactly one priced entry as a
// best-effort match even without symbol equality. The exchange's search
// is company-name-oriented, so a unique hit for a ticker-shaped query is
// very likely the listing the caller meant. Deliberately fragile;
// tighten here if the exchange ever grows symbol search.
func acceptLoneQuote(quotes []domain.Quote) (domain.Quote, bool) {
	if len(quotes) == 1 && quotes[0].HasPrice() {
		return quotes[0], true
	}
	return domain.Quote{}, false
}
