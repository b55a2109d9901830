//go:build fastmath

package core

import (
	"github.com/meko-christian/algo-approx"
)

// ln10 is the natural logarithm of 10, used for base conversions.
const ln10 = 2.302585092994045684017991454684

// mathPower10 computes 10^x using fast approximation.
// Uses the identity: 10^x = e^(x * ln(10))
func mathPower10(x float64) float64 {
	return approx.FastExp(x * ln10)
}
