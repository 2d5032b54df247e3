package domain

import "github.com/shopspring/decimal"

// LiquidityPool is the bank-wide counter limiting aggregate trading
// capital. Exactly one pool exists; every buy decreases AvailableVolume
// by the actual execution cost and every sell increases it by the
// actual proceeds. AvailableVolume never goes negative.
type LiquidityPool struct {
	TotalInvestableVolume decimal.Decimal // fixed ceiling, set at initialization
	AvailableVolume       decimal.Decimal
	Version               int64 // optimistic-concurrency generation, managed by the store
}
