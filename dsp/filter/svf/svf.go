package svf

import (
	"math"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
)

// maxFrequencyRatio keeps the normalized center frequency strictly below
// Nyquist so the tan pre-warp stays finite.
const maxFrequencyRatio = 0.499

// Coefficients fully determine the per-sample transfer function of a Filter.
// A1..A3 set the integrator topology, M0..M2 mix the input and the two
// integrator taps into the output.
type Coefficients struct {
	A1, A2, A3 float64
	M0, M1, M2 float64
}

func prewarp(freq, sampleRate float64) float64 {
	freq = core.Clamp(freq, 0, maxFrequencyRatio*sampleRate)
	return math.Tan(math.Pi * freq / sampleRate)
}

func fromGK(g, k, m0, m1, m2 float64) Coefficients {
	a1 := 1 / (1 + g*(g+k))
	a2 := g * a1
	a3 := g * a2

	return Coefficients{A1: a1, A2: a2, A3: a3, M0: m0, M1: m1, M2: m2}
}

// Peak designs a peaking (bell) filter at freq (Hz) with quality factor q and
// the given gain in dB. The center-frequency magnitude equals 10^(gainDB/20).
// At gainDB = 0 the filter is an exact identity (M1 = 0).
func Peak(freq, gainDB, q, sampleRate float64) Coefficients {
	a := math.Pow(10, gainDB/40)
	g := prewarp(freq, sampleRate)
	k := 1 / (q * a)

	return fromGK(g, k, 1, k*(a*a-1), 0)
}

// LowShelf designs a low-shelf filter at freq (Hz) with quality factor q and
// the given shelf gain in dB.
func LowShelf(freq, gainDB, q, sampleRate float64) Coefficients {
	a := math.Pow(10, gainDB/40)
	g := prewarp(freq, sampleRate)
	k := 1 / q

	return fromGK(g, k, 1, k*(a-1), a*a-1)
}

// Highpass designs a highpass filter at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) Coefficients {
	g := prewarp(freq, sampleRate)
	k := 1 / q

	return fromGK(g, k, 1, -k, -1)
}

// Filter is a single state-variable filter with coefficients and integrator
// state. The zero value is usable once coefficients are assigned.
type Filter struct {
	Coefficients

	ic1eq, ic2eq float64
}

// NewFilter returns a Filter initialized with the given coefficients and
// zero integrator state.
func NewFilter(c Coefficients) *Filter {
	return &Filter{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
//
// The update equations follow Simper's trapezoidal derivation verbatim; they
// define the specific stable discretization this package guarantees:
//
//	v3 = x - ic2eq
//	v1 = a1*ic1eq + a2*v3
//	v2 = ic2eq + a2*ic1eq + a3*v3
//	ic1eq = 2*v1 - ic1eq
//	ic2eq = 2*v2 - ic2eq
//	y = m0*x + m1*v1 + m2*v2
func (f *Filter) ProcessSample(x float64) float64 {
	v3 := x - f.ic2eq
	v1 := f.A1*f.ic1eq + f.A2*v3
	v2 := f.ic2eq + f.A2*f.ic1eq + f.A3*v3
	f.ic1eq = 2*v1 - f.ic1eq
	f.ic2eq = 2*v2 - f.ic2eq

	return f.M0*x + f.M1*v1 + f.M2*v2
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (f *Filter) ProcessBlock(buf []float64) {
	a1, a2, a3 := f.A1, f.A2, f.A3
	m0, m1, m2 := f.M0, f.M1, f.M2
	ic1, ic2 := f.ic1eq, f.ic2eq

	for i, x := range buf {
		v3 := x - ic2
		v1 := a1*ic1 + a2*v3
		v2 := ic2 + a2*ic1 + a3*v3
		ic1 = 2*v1 - ic1
		ic2 = 2*v2 - ic2
		buf[i] = m0*x + m1*v1 + m2*v2
	}

	f.ic1eq, f.ic2eq = ic1, ic2
}

// SetCoefficients replaces the filter coefficients while preserving the
// integrator state, avoiding the discontinuity a fresh zero-state filter
// would produce mid-stream.
func (f *Filter) SetCoefficients(c Coefficients) {
	f.Coefficients = c
}

// Reset clears the integrator state to zero.
func (f *Filter) Reset() {
	f.ic1eq = 0
	f.ic2eq = 0
}

// State returns the current integrator state [ic1eq, ic2eq].
func (f *Filter) State() [2]float64 {
	return [2]float64{f.ic1eq, f.ic2eq}
}

// SetState restores a previously saved integrator state.
func (f *Filter) SetState(state [2]float64) {
	f.ic1eq = state[0]
	f.ic2eq = state[1]
}
