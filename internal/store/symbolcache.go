package store

import (
	"strings"
	"sync"
)

// SymbolCache is a thread-safe ticker → company-name cache. It exists
// to work around the exchange's search-by-company-name-only API: once a
// symbol's company name is known, later lookups can re-query the
// exchange by that name. Entries are best-effort, may be stale, and a
// populated name is never overwritten.
type SymbolCache struct {
	mu    sync.RWMutex
	names map[string]string // symbol → company name
}

// NewSymbolCache creates an empty SymbolCache.
func NewSymbolCache() *SymbolCache {
	return &SymbolCache{names: make(map[string]string)}
}

// CompanyName returns the cached company name for a symbol, if any.
func (s *SymbolCache) CompanyName(symbol string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.names[symbol]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Fill records a company name for a symbol only if none is cached yet.
// Blank names are ignored.
func (s *SymbolCache) Fill(symbol, companyName string) {
	companyName = strings.TrimSpace(companyName)
	if symbol == "" || companyName == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.names[symbol] == "" {
		s.names[symbol] = companyName
	}
}
