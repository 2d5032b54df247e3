package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/store"
)

// PriceLookup resolves a current price for a symbol during valuation.
type PriceLookup func(ctx context.Context, symbol string) (decimal.Decimal, error)

// PositionValuation is one position priced at the current market.
type PositionValuation struct {
	Symbol      string
	CompanyName string
	Quantity    int64
	AverageCost decimal.Decimal
	// CurrentPrice is zero when PriceKnown is false: a resolution
	// failure for one symbol must not abort the rest of the valuation,
	// so the position is reported at an approximate zero price instead
	// of being dropped.
	CurrentPrice decimal.Decimal
	PriceKnown   bool
	MarketValue  decimal.Decimal
	CostBasis    decimal.Decimal
	Gain         decimal.Decimal
}

// PortfolioValuation is a full portfolio priced at the current market.
type PortfolioValuation struct {
	CustomerID string
	Positions  []PositionValuation
	TotalValue decimal.Decimal
}

// Ledger owns all position mutations. Every write goes through a
// bounded read-modify-write loop over the store's versioned writes, so
// two concurrent trades on the same (customer, symbol) serialize
// instead of losing an update.
type Ledger struct {
	positions     *store.PositionStore
	symbols       *store.SymbolCache
	commitRetries int
	logger        *slog.Logger
}

// NewLedger creates a Ledger. commitRetries bounds how often a write is
// retried after losing an optimistic-concurrency race.
func NewLedger(positions *store.PositionStore, symbols *store.SymbolCache, commitRetries int, logger *slog.Logger) *Ledger {
	return &Ledger{
		positions:     positions,
		symbols:       symbols,
		commitRetries: commitRetries,
		logger:        logger,
	}
}

// AddShares records a purchase of qty shares at unitPrice, creating the
// position on first buy and recomputing the weighted-average cost
// otherwise.
func (l *Ledger) AddShares(portfolioID, symbol string, qty int64, unitPrice decimal.Decimal) error {
	if qty <= 0 {
		return &domain.ValidationError{Message: "quantity must be positive"}
	}
	if !unitPrice.IsPositive() {
		return &domain.ValidationError{Message: "unit price must be positive"}
	}

	for attempt := 0; attempt < l.commitRetries; attempt++ {
		current, err := l.positions.Get(portfolioID, symbol)
		if errors.Is(err, domain.ErrPositionNotFound) {
			created := domain.Position{PortfolioID: portfolioID, Symbol: symbol}.WithShares(qty, unitPrice)
			err = l.positions.Put(created, 0)
		} else if err == nil {
			err = l.positions.Put(current.WithShares(qty, unitPrice), current.Version)
		}

		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}
	}
	return fmt.Errorf("%w: add %d %s to portfolio %s", domain.ErrConcurrencyConflict, qty, symbol, portfolioID)
}

// RemoveShares records a sale of qty shares. The position is deleted
// when its quantity reaches exactly zero; its cost-basis history goes
// with it, so reopening the symbol starts a fresh average.
func (l *Ledger) RemoveShares(portfolioID, symbol string, qty int64) error {
	if qty <= 0 {
		return &domain.ValidationError{Message: "quantity must be positive"}
	}

	for attempt := 0; attempt < l.commitRetries; attempt++ {
		current, err := l.positions.Get(portfolioID, symbol)
		if errors.Is(err, domain.ErrPositionNotFound) {
			return fmt.Errorf("%w: no position in %s, requested %d", domain.ErrInsufficientShares, symbol, qty)
		}
		if err != nil {
			return err
		}
		if current.Quantity < qty {
			return fmt.Errorf("%w: %s holds %d, requested %d",
				domain.ErrInsufficientShares, symbol, current.Quantity, qty)
		}

		remaining := current.LessShares(qty)
		if remaining.Quantity == 0 {
			err = l.positions.Delete(portfolioID, symbol, current.Version)
		} else {
			err = l.positions.Put(remaining, current.Version)
		}

		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) && !errors.Is(err, domain.ErrPositionNotFound) {
			return err
		}
	}
	return fmt.Errorf("%w: remove %d %s from portfolio %s", domain.ErrConcurrencyConflict, qty, symbol, portfolioID)
}

// Quantity returns the current holding for (portfolioID, symbol), zero
// when no position exists.
func (l *Ledger) Quantity(portfolioID, symbol string) int64 {
	p, err := l.positions.Get(portfolioID, symbol)
	if err != nil {
		return 0
	}
	return p.Quantity
}

// ValuePortfolio prices every position of a portfolio at the current
// market. Per-symbol resolution failures degrade that position to a
// zero price rather than failing the whole valuation.
func (l *Ledger) ValuePortfolio(ctx context.Context, portfolioID string, price PriceLookup) PortfolioValuation {
	positions := l.positions.ListByPortfolio(portfolioID)

	out := PortfolioValuation{
		CustomerID: portfolioID,
		Positions:  make([]PositionValuation, 0, len(positions)),
		TotalValue: decimal.Zero,
	}

	for _, p := range positions {
		current, err := price(ctx, p.Symbol)
		known := err == nil
		if !known {
			l.logger.Warn("valuation price unavailable, reporting zero",
				slog.String("portfolio_id", portfolioID),
				slog.String("symbol", p.Symbol),
				slog.String("error", err.Error()))
			current = decimal.Zero
		}

		companyName, _ := l.symbols.CompanyName(p.Symbol)
		marketValue := p.MarketValue(current)
		costBasis := p.CostBasis()

		out.Positions = append(out.Positions, PositionValuation{
			Symbol:       p.Symbol,
			CompanyName:  companyName,
			Quantity:     p.Quantity,
			AverageCost:  p.AverageCost,
			CurrentPrice: current,
			PriceKnown:   known,
			MarketValue:  marketValue,
			CostBasis:    costBasis,
			Gain:         marketValue.Sub(costBasis),
		})
		out.TotalValue = out.TotalValue.Add(marketValue)
	}
	return out
}
