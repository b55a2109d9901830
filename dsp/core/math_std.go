//go:build !fastmath

package core

import "math"

// mathPower10 computes 10^x using the standard library.
func mathPower10(x float64) float64 {
	return math.Pow(10, x)
}
