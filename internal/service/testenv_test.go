package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/store"
)

// fakeGateway is an in-process exchange for tests. Search results are
// keyed by query; execution prices and failures are set per test. Call
// counters let tests assert that pre-flight failures never reach the
// exchange.
type fakeGateway struct {
	mu            sync.Mutex
	quotesByQuery map[string][]domain.Quote
	searchErr     error
	buyPrice      decimal.Decimal
	buyErr        error
	sellPrice     decimal.Decimal
	sellErr       error
	searchCalls   int
	buyCalls      int
	sellCalls     int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{quotesByQuery: make(map[string][]domain.Quote)}
}

func (g *fakeGateway) SearchQuotesByCompanyName(_ context.Context, query string) ([]domain.Quote, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.searchCalls++
	if g.searchErr != nil {
		return nil, g.searchErr
	}
	return g.quotesByQuery[query], nil
}

func (g *fakeGateway) ExecuteBuy(_ context.Context, symbol string, shares int64) (decimal.Decimal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buyCalls++
	if g.buyErr != nil {
		return decimal.Zero, g.buyErr
	}
	return g.buyPrice, nil
}

func (g *fakeGateway) ExecuteSell(_ context.Context, symbol string, shares int64) (decimal.Decimal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sellCalls++
	if g.sellErr != nil {
		return decimal.Zero, g.sellErr
	}
	return g.sellPrice, nil
}

// listQuote registers a quote so that searching for the symbol itself
// returns it (the resolver's first attempt succeeds with an exact
// match).
func (g *fakeGateway) listQuote(symbol, companyName, price string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quotesByQuery[symbol] = append(g.quotesByQuery[symbol], domain.Quote{
		Symbol:         symbol,
		CompanyName:    companyName,
		LastTradePrice: decimal.RequireFromString(price),
		StockExchange:  "TEST",
	})
}

// testEnv bundles all dependencies for service tests, with one
// pre-created customer ("alice").
type testEnv struct {
	customers   *store.CustomerStore
	positions   *store.PositionStore
	liquidity   *store.LiquidityStore
	symbols     *store.SymbolCache
	gateway     *fakeGateway
	guard       *AccessGuard
	resolver    *QuoteResolver
	ledger      *Ledger
	trading     *TradingService
	portfolios  *PortfolioService
	customerSvc *CustomerService
	bank        *BankService
	alice       domain.Customer
}

const testCommitRetries = 5

// testingT is the subset of testing.TB used by the test environment,
// satisfied by both *testing.T and *rapid.T.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

func newTestEnv(t testingT, initialLiquidity string) *testEnv {
	t.Helper()
	return newTestEnvRetries(t, initialLiquidity, testCommitRetries)
}

func newTestEnvRetries(t testingT, initialLiquidity string, commitRetries int) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	customers := store.NewCustomerStore()
	positions := store.NewPositionStore()
	liquidity := store.NewLiquidityStore(decimal.RequireFromString(initialLiquidity))
	symbols := store.NewSymbolCache()
	gateway := newFakeGateway()

	guard := NewAccessGuard(customers)
	resolver := NewQuoteResolver(gateway, symbols, logger)
	ledger := NewLedger(positions, symbols, commitRetries, logger)
	trading := NewTradingService(guard, customers, ledger, liquidity, resolver, gateway, commitRetries, logger)

	env := &testEnv{
		customers:   customers,
		positions:   positions,
		liquidity:   liquidity,
		symbols:     symbols,
		gateway:     gateway,
		guard:       guard,
		resolver:    resolver,
		ledger:      ledger,
		trading:     trading,
		portfolios:  NewPortfolioService(guard, customers, ledger, resolver),
		customerSvc: NewCustomerService(guard, customers),
		bank:        NewBankService(guard, liquidity),
	}

	alice, err := env.customerSvc.Create(employee(), CreateCustomerRequest{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("create test customer: %v", err)
	}
	env.alice = alice
	return env
}

func employee() domain.Actor {
	return domain.Actor{Role: domain.RoleEmployee, Username: "teller1"}
}

func customer(username string) domain.Actor {
	return domain.Actor{Role: domain.RoleCustomer, Username: username}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
