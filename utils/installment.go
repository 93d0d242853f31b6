package utils

import "math"

// SteppedUpAmount is the amount of installment number n (1-indexed) of a SIP
// whose amount compounds by stepUpPercentage per installment.
func SteppedUpAmount(baseAmount, stepUpPercentage float64, n int) float64 {
	if stepUpPercentage <= 0 || n <= 1 {
		return baseAmount
	}
	factor := math.Pow(1.0+stepUpPercentage/100.0, float64(n-1))
	return baseAmount * factor
}

// Units converts an amount to fund units at nav. A non-positive nav yields 0.
func Units(amount, nav float64) float64 {
	if nav <= 0 {
		return 0
	}
	return amount / nav
}
