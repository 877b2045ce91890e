package calc

import "github.com/shopspring/decimal"

// ToMinorUnits converts a major-unit amount (e.g. 100.00) to integer
// minor-currency units (10000) for the payment gateway.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// LineTotal is quantity times unit price, rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// PercentOf computes percent of a base amount, rounded to cents.
func PercentOf(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}
