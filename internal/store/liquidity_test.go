package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BaharRaf/trading/internal/domain"
)

func TestLiquidityStore_LazyInit(t *testing.T) {
	s := NewLiquidityStore(decimal.NewFromInt(1_000_000_000))

	pool := s.Get()
	if !pool.TotalInvestableVolume.Equal(decimal.NewFromInt(1_000_000_000)) {
		t.Errorf("TotalInvestableVolume = %s, want 1000000000", pool.TotalInvestableVolume)
	}
	if !pool.AvailableVolume.Equal(pool.TotalInvestableVolume) {
		t.Errorf("AvailableVolume = %s, want equal to total", pool.AvailableVolume)
	}
	if pool.Version != 1 {
		t.Errorf("Version = %d, want 1", pool.Version)
	}
}

func TestLiquidityStore_CompareAndSwap(t *testing.T) {
	s := NewLiquidityStore(decimal.NewFromInt(1000))
	pool := s.Get()

	if err := s.CompareAndSwap(decimal.NewFromInt(700), pool.Version); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := s.Get()
	if !got.AvailableVolume.Equal(decimal.NewFromInt(700)) {
		t.Errorf("AvailableVolume = %s, want 700", got.AvailableVolume)
	}
	if got.Version != 2 {
		t.Errorf("Version = %d, want 2", got.Version)
	}

	// The old version is now stale.
	if err := s.CompareAndSwap(decimal.NewFromInt(500), pool.Version); !errors.Is(err, domain.ErrVersionConflict) {
		t.Errorf("stale swap err = %v, want ErrVersionConflict", err)
	}
}

// Two writers racing on the same snapshot: exactly one CAS succeeds.
func TestLiquidityStore_ConcurrentSwap_SingleWinner(t *testing.T) {
	s := NewLiquidityStore(decimal.NewFromInt(1000))
	pool := s.Get()

	const writers = 8
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.CompareAndSwap(decimal.NewFromInt(900), pool.Version)
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrVersionConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
	if conflicts != writers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, writers-1)
	}
}
