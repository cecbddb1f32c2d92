package billing

import "github.com/shopspring/decimal"

// Round rounds an amount to cents, halves away from zero.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
