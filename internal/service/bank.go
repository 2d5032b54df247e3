package service

import (
	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/store"
)

// BankService answers bank-level queries.
type BankService struct {
	guard     *AccessGuard
	liquidity *store.LiquidityStore
}

// NewBankService creates a BankService.
func NewBankService(guard *AccessGuard, liquidity *store.LiquidityStore) *BankService {
	return &BankService{guard: guard, liquidity: liquidity}
}

// AvailableLiquidity returns the bank's liquidity pool. Employee-only:
// customers have no business seeing the bank's trading capacity.
func (s *BankService) AvailableLiquidity(actor domain.Actor) (domain.LiquidityPool, error) {
	if err := s.guard.RequireEmployee(actor); err != nil {
		return domain.LiquidityPool{}, err
	}
	return s.liquidity.Get(), nil
}
