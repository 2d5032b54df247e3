package store

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
)

// LiquidityStore holds the single bank-wide liquidity pool. The pool is
// created lazily on first access with the configured initial volume as
// both ceiling and available balance.
//
// Updates go through CompareAndSwap so that two concurrent trades can
// never both reserve funds against the same observed balance: the loser
// gets domain.ErrVersionConflict and must re-read and retry.
type LiquidityStore struct {
	mu      sync.Mutex
	pool    *domain.LiquidityPool
	initial decimal.Decimal
}

// NewLiquidityStore creates a LiquidityStore whose pool will be
// initialized with the given volume on first access.
func NewLiquidityStore(initialVolume decimal.Decimal) *LiquidityStore {
	return &LiquidityStore{initial: initialVolume}
}

// Get returns a snapshot of the pool, creating it if missing.
func (s *LiquidityStore) Get() domain.LiquidityPool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool == nil {
		s.pool = &domain.LiquidityPool{
			TotalInvestableVolume: s.initial,
			AvailableVolume:       s.initial,
			Version:               1,
		}
	}
	return *s.pool
}

// CompareAndSwap sets the available volume if the pool's version still
// matches expectedVersion, incrementing the version. It returns
// domain.ErrVersionConflict when the pool has changed since the caller
// read it.
func (s *LiquidityStore) CompareAndSwap(available decimal.Decimal, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool == nil || s.pool.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	s.pool.AvailableVolume = available
	s.pool.Version++
	return nil
}
