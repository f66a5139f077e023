package utils

import "math"

// RoundCents rounds a monetary amount to two decimal places, half-up.
// All derived order fields (tax, fees, totals) go through this so the
// stored values are always exact cents.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
