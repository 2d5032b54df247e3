package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/exchange"
	"github.com/BaharRaf/trading/internal/store"
)

// TradeRequest is a buy or sell instruction. CustomerID is the target
// account for employee-initiated trades and may be empty for customer
// self-service (the guard pins it to the caller's own account either
// way).
type TradeRequest struct {
	CustomerID string
	Symbol     string
	Quantity   int64
}

// TradingService orchestrates trade settlement: authorize, resolve a
// price estimate, pre-flight check, execute on the exchange, then
// commit the liquidity pool and position ledger together using the
// actual execution price.
//
// The exchange execution is the single point where real money moves.
// It happens exactly once per accepted request and is never retried.
// Everything before it is side-effect free; a commit failure after it
// is an external/internal divergence surfaced as
// domain.ErrPostExecutionCommit and logged for manual reconciliation.
type TradingService struct {
	guard         *AccessGuard
	customers     *store.CustomerStore
	ledger        *Ledger
	liquidity     *store.LiquidityStore
	resolver      *QuoteResolver
	gateway       exchange.Gateway
	commitRetries int
	logger        *slog.Logger
}

// NewTradingService creates a TradingService.
func NewTradingService(
	guard *AccessGuard,
	customers *store.CustomerStore,
	ledger *Ledger,
	liquidity *store.LiquidityStore,
	resolver *QuoteResolver,
	gateway exchange.Gateway,
	commitRetries int,
	logger *slog.Logger,
) *TradingService {
	return &TradingService{
		guard:         guard,
		customers:     customers,
		ledger:        ledger,
		liquidity:     liquidity,
		resolver:      resolver,
		gateway:       gateway,
		commitRetries: commitRetries,
		logger:        logger,
	}
}

// Buy purchases req.Quantity shares of req.Symbol for the resolved
// customer and returns the actual execution price.
func (s *TradingService) Buy(ctx context.Context, actor domain.Actor, req TradeRequest) (decimal.Decimal, error) {
	customerID, sym, err := s.admit(actor, req)
	if err != nil {
		return decimal.Zero, err
	}

	quote, err := s.resolver.Resolve(ctx, sym)
	if err != nil {
		return decimal.Zero, err
	}

	qty := decimal.NewFromInt(req.Quantity)
	estimatedCost := quote.LastTradePrice.Mul(qty)
	pool := s.liquidity.Get()
	if pool.AvailableVolume.LessThan(estimatedCost) {
		return decimal.Zero, fmt.Errorf("%w: buy %d %s needs %s, bank has %s",
			domain.ErrInsufficientFunds, req.Quantity, sym, estimatedCost, pool.AvailableVolume)
	}

	actualPrice, err := s.gateway.ExecuteBuy(ctx, sym, req.Quantity)
	if err != nil {
		if !errors.Is(err, domain.ErrExternalExecution) {
			err = fmt.Errorf("%w: buy %d %s: %v", domain.ErrExternalExecution, req.Quantity, sym, err)
		}
		return decimal.Zero, err
	}

	// The exchange has executed. From here every failure leaves
	// external and internal state diverged and must stay visible.
	actualCost := actualPrice.Mul(qty)
	if err := s.reserve(actualCost); err != nil {
		return decimal.Zero, s.commitFailure(err, "buy", customerID, sym, req.Quantity, actualPrice)
	}
	if err := s.ledger.AddShares(customerID, sym, req.Quantity, actualPrice); err != nil {
		return decimal.Zero, s.commitFailure(err, "buy", customerID, sym, req.Quantity, actualPrice)
	}

	s.logger.Info("buy settled",
		slog.String("customer_id", customerID),
		slog.String("symbol", sym),
		slog.Int64("quantity", req.Quantity),
		slog.String("price", actualPrice.String()))
	return actualPrice, nil
}

// Sell sells req.Quantity shares of req.Symbol for the resolved
// customer and returns the actual execution price.
func (s *TradingService) Sell(ctx context.Context, actor domain.Actor, req TradeRequest) (decimal.Decimal, error) {
	customerID, sym, err := s.admit(actor, req)
	if err != nil {
		return decimal.Zero, err
	}

	// Fail fast before the exchange call: an external sell the ledger
	// cannot back would be irreversible.
	if held := s.ledger.Quantity(customerID, sym); held < req.Quantity {
		return decimal.Zero, fmt.Errorf("%w: %s holds %d, requested %d",
			domain.ErrInsufficientShares, sym, held, req.Quantity)
	}

	actualPrice, err := s.gateway.ExecuteSell(ctx, sym, req.Quantity)
	if err != nil {
		if !errors.Is(err, domain.ErrExternalExecution) {
			err = fmt.Errorf("%w: sell %d %s: %v", domain.ErrExternalExecution, req.Quantity, sym, err)
		}
		return decimal.Zero, err
	}

	if err := s.ledger.RemoveShares(customerID, sym, req.Quantity); err != nil {
		return decimal.Zero, s.commitFailure(err, "sell", customerID, sym, req.Quantity, actualPrice)
	}
	if err := s.release(actualPrice.Mul(decimal.NewFromInt(req.Quantity))); err != nil {
		return decimal.Zero, s.commitFailure(err, "sell", customerID, sym, req.Quantity, actualPrice)
	}

	s.logger.Info("sell settled",
		slog.String("customer_id", customerID),
		slog.String("symbol", sym),
		slog.Int64("quantity", req.Quantity),
		slog.String("price", actualPrice.String()))
	return actualPrice, nil
}

// admit runs the side-effect-free validations shared by buy and sell:
// argument checks, the access guard, and customer existence.
func (s *TradingService) admit(actor domain.Actor, req TradeRequest) (customerID, sym string, err error) {
	if req.Quantity <= 0 {
		return "", "", &domain.ValidationError{Message: "quantity must be positive"}
	}
	sym = domain.NormalizeSymbol(req.Symbol)
	if sym == "" {
		return "", "", &domain.ValidationError{Message: "symbol must not be blank"}
	}

	customerID, err = s.guard.Resolve(actor, req.CustomerID)
	if err != nil {
		return "", "", err
	}
	if _, err := s.customers.GetByID(customerID); err != nil {
		return "", "", fmt.Errorf("%w: id %q", domain.ErrCustomerNotFound, customerID)
	}
	return customerID, sym, nil
}

// reserve decrements the pool by amount through a bounded CAS loop.
func (s *TradingService) reserve(amount decimal.Decimal) error {
	for attempt := 0; attempt < s.commitRetries; attempt++ {
		pool := s.liquidity.Get()
		if pool.AvailableVolume.LessThan(amount) {
			return fmt.Errorf("%w: reserve %s, bank has %s",
				domain.ErrInsufficientFunds, amount, pool.AvailableVolume)
		}
		err := s.liquidity.CompareAndSwap(pool.AvailableVolume.Sub(amount), pool.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}
	}
	return fmt.Errorf("%w: reserve %s", domain.ErrConcurrencyConflict, amount)
}

// release returns amount to the pool through a bounded CAS loop. Sell
// proceeds are returned capital, so there is no ceiling check here.
func (s *TradingService) release(amount decimal.Decimal) error {
	for attempt := 0; attempt < s.commitRetries; attempt++ {
		pool := s.liquidity.Get()
		err := s.liquidity.CompareAndSwap(pool.AvailableVolume.Add(amount), pool.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}
	}
	return fmt.Errorf("%w: release %s", domain.ErrConcurrencyConflict, amount)
}

// commitFailure logs and classifies a commit error that happened after
// the exchange already executed. Exhausted optimistic retries keep
// their ErrConcurrencyConflict identity; everything else becomes
// ErrPostExecutionCommit. Neither is retried or compensated — the
// divergence requires manual reconciliation.
func (s *TradingService) commitFailure(err error, side, customerID, sym string, qty int64, price decimal.Decimal) error {
	s.logger.Error("commit failed after exchange execution, state diverged",
		slog.String("side", side),
		slog.String("customer_id", customerID),
		slog.String("symbol", sym),
		slog.Int64("quantity", qty),
		slog.String("price", price.String()),
		slog.String("error", err.Error()))

	if errors.Is(err, domain.ErrConcurrencyConflict) {
		return err
	}
	return fmt.Errorf("%w: %s %d %s at %s: %v",
		domain.ErrPostExecutionCommit, side, qty, sym, price, err)
}
