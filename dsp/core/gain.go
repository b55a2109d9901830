package core

import "math"

// Q endpoints for the gain-to-bandwidth mapping. The low end corresponds to a
// bandwidth of roughly six octaves, the high end to roughly a quarter octave.
const (
	QMin = 0.126984
	QMax = 5.763566

	// qNormRangeDB is the gain magnitude that maps to QMax.
	qNormRangeDB = 12.0
)

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return mathPower10(db / 20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// Lerp linearly interpolates between a and b. t is not clamped, so values
// outside [0, 1] extrapolate.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FastReciprocal approximates 1/x for positive finite x via the
// inverse-square-root identity 1/x = (1/sqrt(x))^2, seeded by a bit-level
// estimate and refined with three Newton-Raphson steps. The relative error
// stays well below 1e-9 over the audio parameter range.
func FastReciprocal(x float64) float64 {
	half := 0.5 * x
	i := math.Float64bits(x)
	i = 0x5fe6eb50c7b537a9 - i>>1

	y := math.Float64frombits(i)
	y *= 1.5 - half*y*y
	y *= 1.5 - half*y*y
	y *= 1.5 - half*y*y

	return y * y
}

// GainDBToQ maps a band gain in dB to the quality factor of its peak filter.
// The magnitude is normalized over a 12 dB range and squared, so Q grows
// quadratically from QMin toward QMax as the boost or cut gets stronger.
// The sign of db does not matter.
func GainDBToQ(db float64) float64 {
	t := db / qNormRangeDB
	t *= t

	return Lerp(QMin, QMax, t)
}
