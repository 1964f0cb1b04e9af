package pricing

import "math"

// RoundCents rounds a currency amount to two decimal places, half-up.
// All money leaving this package goes through it.
func RoundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
