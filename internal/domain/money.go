package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places kept for prices, cost bases,
// and liquidity volumes.
const MoneyScale = 4

// Round4 rounds d to MoneyScale decimal places using half-up rounding,
// the financial convention for purchase prices and average cost bases.
func Round4(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}
