package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/store"
)

// PortfolioService answers portfolio queries for employees and for
// customers viewing their own account.
type PortfolioService struct {
	guard     *AccessGuard
	customers *store.CustomerStore
	ledger    *Ledger
	resolver  *QuoteResolver
}

// NewPortfolioService creates a PortfolioService.
func NewPortfolioService(guard *AccessGuard, customers *store.CustomerStore, ledger *Ledger, resolver *QuoteResolver) *PortfolioService {
	return &PortfolioService{
		guard:     guard,
		customers: customers,
		ledger:    ledger,
		resolver:  resolver,
	}
}

// Get returns the resolved customer's portfolio valued at current
// market prices.
func (s *PortfolioService) Get(ctx context.Context, actor domain.Actor, customerID string) (PortfolioValuation, error) {
	id, err := s.guard.Resolve(actor, customerID)
	if err != nil {
		return PortfolioValuation{}, err
	}
	if _, err := s.customers.GetByID(id); err != nil {
		return PortfolioValuation{}, fmt.Errorf("%w: id %q", domain.ErrCustomerNotFound, id)
	}

	return s.ledger.ValuePortfolio(ctx, id, func(ctx context.Context, symbol string) (decimal.Decimal, error) {
		q, err := s.resolver.Resolve(ctx, symbol)
		if err != nil {
			return decimal.Zero, err
		}
		return q.LastTradePrice, nil
	}), nil
}
