// Package envelope provides an asymmetric attack/release peak follower used
// for signal-presence detection.
package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
)

// SilenceFloor is the level below which the follower snaps to exactly zero
// (about -144 dBFS). The hard floor guarantees downstream gating sees clean
// silence instead of an asymptotically decaying residue.
const SilenceFloor = 6.30957344480193e-8

const (
	minFollowerTimeMs = 0.0
	maxFollowerTimeMs = 5000.0
)

// Follower is a one-pole peak detector with independent attack and release
// time constants. Rising input is tracked with the attack coefficient,
// falling input with the release coefficient.
//
// An attack time of 0 ms is treated as instant attack (coefficient exactly 0)
// rather than relying on the floating-point limit of the exponential.
type Follower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64

	attackCoeff  float64
	releaseCoeff float64

	level float64
}

// NewFollower creates a peak follower with the given attack and release times
// in milliseconds. Sample rate must be positive and finite.
func NewFollower(attackMs, releaseMs, sampleRate float64) (*Follower, error) {
	f := &Follower{
		sampleRate: sampleRate,
		attackMs:   attackMs,
		releaseMs:  releaseMs,
	}

	err := f.recalculate()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// SetAttack sets the attack time in milliseconds. Zero means instant attack.
func (f *Follower) SetAttack(ms float64) error {
	if ms < minFollowerTimeMs || ms > maxFollowerTimeMs || !core.IsFinite(ms) {
		return fmt.Errorf("follower attack must be in [%f, %f]: %f",
			minFollowerTimeMs, maxFollowerTimeMs, ms)
	}

	f.attackMs = ms

	return f.recalculate()
}

// SetRelease sets the release time in milliseconds. Zero means instant release.
func (f *Follower) SetRelease(ms float64) error {
	if ms < minFollowerTimeMs || ms > maxFollowerTimeMs || !core.IsFinite(ms) {
		return fmt.Errorf("follower release must be in [%f, %f]: %f",
			minFollowerTimeMs, maxFollowerTimeMs, ms)
	}

	f.releaseMs = ms

	return f.recalculate()
}

// SetSampleRate updates the sample rate and recalculates both coefficients.
func (f *Follower) SetSampleRate(sampleRate float64) error {
	f.sampleRate = sampleRate
	return f.recalculate()
}

// Attack returns the attack time in milliseconds.
func (f *Follower) Attack() float64 { return f.attackMs }

// Release returns the release time in milliseconds.
func (f *Follower) Release() float64 { return f.releaseMs }

// SampleRate returns the sample rate in Hz.
func (f *Follower) SampleRate() float64 { return f.sampleRate }

// Level returns the current envelope level.
func (f *Follower) Level() float64 { return f.level }

// ProcessSample advances the envelope by one sample of input and returns the
// new level. The sign of the input is ignored. Once the level falls below
// [SilenceFloor] it is forced to exactly zero.
func (f *Follower) ProcessSample(input float64) float64 {
	target := math.Abs(input)

	coeff := f.releaseCoeff
	if target > f.level {
		coeff = f.attackCoeff
	}

	f.level = target + coeff*(f.level-target)
	if f.level < SilenceFloor {
		f.level = 0
	}

	return f.level
}

// Reset clears the envelope level to zero.
func (f *Follower) Reset() {
	f.level = 0
}

func (f *Follower) recalculate() error {
	if f.sampleRate <= 0 || !core.IsFinite(f.sampleRate) {
		return fmt.Errorf("follower sample rate must be positive and finite: %f", f.sampleRate)
	}

	f.attackCoeff = timeCoefficient(f.attackMs, f.sampleRate)
	f.releaseCoeff = timeCoefficient(f.releaseMs, f.sampleRate)

	return nil
}

// timeCoefficient converts a time constant in milliseconds to a one-pole
// smoothing coefficient: exp(-1000 / (ms * sampleRate)). A non-positive time
// maps to coefficient 0 so the follower jumps to the target in one sample.
func timeCoefficient(ms, sampleRate float64) float64 {
	if ms <= 0 {
		return 0
	}

	return math.Exp(-1000 * core.FastReciprocal(ms*sampleRate))
}
