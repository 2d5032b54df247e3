package domain

import "github.com/shopspring/decimal"

// Position is a customer's holding of a single stock symbol. There is
// at most one position per (portfolio, symbol); a position whose
// quantity reaches zero is deleted, discarding its cost-basis history.
type Position struct {
	PortfolioID string // equals the owning customer's id
	Symbol      string
	Quantity    int64
	AverageCost decimal.Decimal
	Version     int64 // optimistic-concurrency generation, managed by the store
}

// WithShares returns the position after buying qty shares at unitPrice.
// The new average cost is the quantity-weighted mean over the existing
// basis and the new lot, rounded half-up to four decimal places. It is
// never a simple average of prices.
func (p Position) WithShares(qty int64, unitPrice decimal.Decimal) Position {
	oldQty := decimal.NewFromInt(p.Quantity)
	addQty := decimal.NewFromInt(qty)
	total := oldQty.Mul(p.AverageCost).Add(addQty.Mul(unitPrice))
	p.Quantity += qty
	p.AverageCost = Round4(total.Div(decimal.NewFromInt(p.Quantity)))
	return p
}

// LessShares returns the position after selling qty shares. Selling
// does not change the average cost; the caller deletes the position
// when the remaining quantity is zero.
func (p Position) LessShares(qty int64) Position {
	p.Quantity -= qty
	return p
}

// MarketValue is quantity × price.
func (p Position) MarketValue(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(p.Quantity))
}

// CostBasis is quantity × average cost.
func (p Position) CostBasis() decimal.Decimal {
	return p.AverageCost.Mul(decimal.NewFromInt(p.Quantity))
}
