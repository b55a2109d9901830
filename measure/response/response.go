package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
)

// Errors returned by response measurement functions.
var (
	ErrNilProcessor      = errors.New("response: processor is nil")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

const defaultFFTSize = 8192

// SampleProcessor is the minimal surface a processor must expose to be
// measured. The filters in this module all satisfy it.
type SampleProcessor interface {
	ProcessSample(x float64) float64
}

// Chain measures several processors in series as one system.
type Chain []SampleProcessor

// ProcessSample runs x through every processor in order.
func (c Chain) ProcessSample(x float64) float64 {
	for _, p := range c {
		x = p.ProcessSample(x)
	}
	return x
}

// Config holds measurement parameters.
type Config struct {
	SampleRate float64
	FFTSize    int // power of two; 8192 when zero
}

// Result holds a measured magnitude response.
//
// Magnitude and MagnitudeDB cover the non-negative-frequency bins
// [0 .. FFTSize/2]; bin k corresponds to k*SampleRate/FFTSize Hz.
type Result struct {
	SampleRate  float64
	FFTSize     int
	Impulse     []float64
	Magnitude   []float64
	MagnitudeDB []float64
}

// Measure captures the impulse response of p and returns its magnitude
// spectrum. The processor should be in a cleared state; its state is consumed
// by the measurement.
func Measure(p SampleProcessor, cfg Config) (Result, error) {
	if p == nil {
		return Result{}, ErrNilProcessor
	}
	if cfg.SampleRate <= 0 || !core.IsFinite(cfg.SampleRate) {
		return Result{}, ErrInvalidSampleRate
	}

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = defaultFFTSize
	}
	if fftSize&(fftSize-1) != 0 {
		return Result{}, fmt.Errorf("response: FFT size must be a power of two: %d", fftSize)
	}

	impulse := ImpulseResponse(p, fftSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("response: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range impulse {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("response: %w", err)
	}

	binCount := fftSize/2 + 1
	re := make([]float64, binCount)
	im := make([]float64, binCount)
	for i := 0; i < binCount; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, binCount)
	vecmath.Magnitude(mag, re, im)

	magDB := make([]float64, binCount)
	for i, m := range mag {
		magDB[i] = core.LinearToDB(m)
	}

	return Result{
		SampleRate:  cfg.SampleRate,
		FFTSize:     fftSize,
		Impulse:     impulse,
		Magnitude:   mag,
		MagnitudeDB: magDB,
	}, nil
}

// ImpulseResponse feeds a unit impulse followed by zeros through p and
// returns the first n output samples.
func ImpulseResponse(p SampleProcessor, n int) []float64 {
	out := core.EnsureLen(nil, n)
	core.Zero(out)

	if n == 0 {
		return out
	}

	out[0] = p.ProcessSample(1)
	for i := 1; i < n; i++ {
		out[i] = p.ProcessSample(0)
	}

	return out
}

// FrequencyAt returns the center frequency of bin k in Hz.
func (r Result) FrequencyAt(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.FFTSize)
}

// At returns the magnitude at freqHz, linearly interpolated between the two
// nearest bins. Frequencies outside [0, Nyquist] clamp to the edge bins.
func (r Result) At(freqHz float64) float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}

	pos := freqHz * float64(r.FFTSize) / r.SampleRate
	if pos <= 0 {
		return r.Magnitude[0]
	}
	if pos >= float64(len(r.Magnitude)-1) {
		return r.Magnitude[len(r.Magnitude)-1]
	}

	k := int(pos)
	return core.Lerp(r.Magnitude[k], r.Magnitude[k+1], pos-float64(k))
}

// AtDB returns the magnitude at freqHz in dB.
func (r Result) AtDB(freqHz float64) float64 {
	return core.LinearToDB(r.At(freqHz))
}

// PeakBin returns the bin index with the largest magnitude.
func (r Result) PeakBin() int {
	peak := 0
	for i, m := range r.Magnitude {
		if m > r.Magnitude[peak] {
			peak = i
		}
	}
	return peak
}

// CutoffHz returns the lowest frequency above refHz where the response falls
// to the given level in dB relative to the magnitude at refHz. Returns the
// Nyquist frequency if the response never falls that far.
func (r Result) CutoffHz(refHz, dropDB float64) float64 {
	ref := r.At(refHz)
	if ref <= 0 {
		return r.FrequencyAt(len(r.Magnitude) - 1)
	}

	threshold := ref * core.DBToLinear(dropDB)
	refBin := int(math.Ceil(refHz * float64(r.FFTSize) / r.SampleRate))
	for k := refBin; k < len(r.Magnitude); k++ {
		if r.Magnitude[k] <= threshold {
			return r.FrequencyAt(k)
		}
	}

	return r.FrequencyAt(len(r.Magnitude) - 1)
}
