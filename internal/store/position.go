package store

import (
	"sync"

	"github.com/google/btree"

	"github.com/BaharRaf/trading/internal/domain"
)

type positionKey struct {
	portfolioID string
	symbol      string
}

// positionLess orders positions by portfolio id, then symbol, so a
// portfolio's positions come out as one symbol-sorted contiguous range.
func positionLess(a, b domain.Position) bool {
	if a.PortfolioID != b.PortfolioID {
		return a.PortfolioID < b.PortfolioID
	}
	return a.Symbol < b.Symbol
}

// PositionStore is a thread-safe in-memory store for positions, keyed
// by (portfolio id, symbol), with a B-tree for ordered portfolio
// listings and a secondary index for O(1) point lookups.
//
// Writes are version-checked: every stored position carries a
// generation counter, and a write whose expected version no longer
// matches fails with domain.ErrVersionConflict instead of silently
// overwriting a concurrent update.
type PositionStore struct {
	mu    sync.RWMutex
	tree  *btree.BTreeG[domain.Position]
	index map[positionKey]domain.Position
}

// NewPositionStore creates an empty PositionStore.
func NewPositionStore() *PositionStore {
	const degree = 32
	return &PositionStore{
		tree:  btree.NewG[domain.Position](degree, positionLess),
		index: make(map[positionKey]domain.Position),
	}
}

// Get retrieves a snapshot of the position for (portfolioID, symbol),
// including its current version. It returns domain.ErrPositionNotFound
// if no position exists.
func (s *PositionStore) Get(portfolioID, symbol string) (domain.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.index[positionKey{portfolioID, symbol}]
	if !ok {
		return domain.Position{}, domain.ErrPositionNotFound
	}
	return p, nil
}

// Put writes a position conditionally. expectedVersion 0 means "create":
// the write fails with domain.ErrVersionConflict if a position already
// exists. A non-zero expectedVersion must match the stored version; on
// success the stored version is incremented.
func (s *PositionStore) Put(p domain.Position, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := positionKey{p.PortfolioID, p.Symbol}
	stored, exists := s.index[key]

	if expectedVersion == 0 {
		if exists {
			return domain.ErrVersionConflict
		}
		p.Version = 1
	} else {
		if !exists || stored.Version != expectedVersion {
			return domain.ErrVersionConflict
		}
		p.Version = expectedVersion + 1
	}

	s.index[key] = p
	s.tree.ReplaceOrInsert(p)
	return nil
}

// Delete removes a position conditionally on its version. It returns
// domain.ErrPositionNotFound if no position exists and
// domain.ErrVersionConflict if the stored version has moved on.
func (s *PositionStore) Delete(portfolioID, symbol string, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := positionKey{portfolioID, symbol}
	stored, exists := s.index[key]
	if !exists {
		return domain.ErrPositionNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrVersionConflict
	}

	delete(s.index, key)
	s.tree.Delete(stored)
	return nil
}

// ListByPortfolio returns all positions of a portfolio in ascending
// symbol order. Returns an empty slice if the portfolio holds nothing.
func (s *PositionStore) ListByPortfolio(portfolioID string) []domain.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Position, 0)
	pivot := domain.Position{PortfolioID: portfolioID}
	s.tree.AscendGreaterOrEqual(pivot, func(p domain.Position) bool {
		if p.PortfolioID != portfolioID {
			return false
		}
		result = append(result, p)
		return true
	})
	return result
}
