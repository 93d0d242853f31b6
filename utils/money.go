package utils

import "github.com/shopspring/decimal"

// RoundMoney rounds a currency amount half away from zero to 2 places.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundUnits keeps 4 decimal places, the precision fund houses allot units in.
func RoundUnits(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
