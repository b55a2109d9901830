// Package signal generates deterministic test and excitation signals.
package signal

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Sine generates a sine wave of the given frequency and peak amplitude.
func Sine(freqHz, amplitude, sampleRate float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("signal: sine sample rate must be > 0: %f", sampleRate)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// WhiteNoise generates seeded uniform white noise in [-amplitude, amplitude].
func WhiteNoise(seed uint64, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewPCG(seed, 0))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// Impulse generates a unit impulse at the given position.
func Impulse(samples, pos int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: impulse samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	if pos >= 0 && pos < samples {
		out[pos] = 1
	}

	return out, nil
}

// Normalize scales data to the target peak amplitude and returns a new slice.
// An all-zero input stays zero.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}

	return out, nil
}
