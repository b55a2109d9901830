// Package oversample provides the Butterworth anti-alias low-pass used around
// the 2x zero-stuffing upsampler.
//
// The same cascade band-limits the signal before a zero-stuffed sample is
// inserted and doubles as the reconstruction filter: because no new energy
// appears above the original Nyquist after upsampling, the interpolated
// sample can simply be dropped again without an explicit decimation filter.
// That is a deliberate CPU-saving approximation, not an oversight; the
// mirror-image artifact it leaves behind sits above the band the upsampling
// low-pass already attenuated.
package oversample

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
)

// maxCutoffRatio keeps the cutoff strictly below Nyquist so the tan pre-warp
// stays finite.
const maxCutoffRatio = 0.499

// stage is one second-order Butterworth low-pass section with its two-sample
// delay memory.
type stage struct {
	a, d1, d2 float64
	w1, w2    float64
}

// Filter is a cascade of Butterworth second-order low-pass sections processed
// in series. order counts sections, so the overall filter order is 2*order.
type Filter struct {
	cutoffHz   float64
	sampleRate float64
	stages     []stage
}

// NewFilter creates a Butterworth low-pass cascade of the given section count
// with zero-initialized delay memory. The cutoff is clamped strictly below
// the Nyquist frequency of sampleRate.
func NewFilter(cutoffHz, sampleRate float64, order int) (*Filter, error) {
	if order <= 0 {
		return nil, fmt.Errorf("oversample filter order must be positive: %d", order)
	}

	f := &Filter{stages: make([]stage, order)}

	err := f.Configure(cutoffHz, sampleRate)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Configure recomputes the section coefficients for a new cutoff and sample
// rate. Delay memory is preserved so a running filter can be retuned without
// an output discontinuity.
func (f *Filter) Configure(cutoffHz, sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("oversample filter sample rate must be positive and finite: %f", sampleRate)
	}

	if cutoffHz <= 0 || !core.IsFinite(cutoffHz) {
		return fmt.Errorf("oversample filter cutoff must be positive and finite: %f", cutoffHz)
	}

	cutoffHz = math.Min(cutoffHz, maxCutoffRatio*sampleRate)

	f.cutoffHz = cutoffHz
	f.sampleRate = sampleRate

	n := len(f.stages)
	a := math.Tan(math.Pi * cutoffHz / sampleRate)
	a2 := a * a

	for i := range f.stages {
		r := math.Sin(math.Pi * float64(2*i+1) / float64(4*n))
		s := a2 + 2*a*r + 1

		f.stages[i].a = a2 / s
		f.stages[i].d1 = 2 * (1 - a2) / s
		f.stages[i].d2 = -(a2 - 2*a*r + 1) / s
	}

	return nil
}

// ProcessSample runs one sample through all sections in series.
func (f *Filter) ProcessSample(x float64) float64 {
	for i := range f.stages {
		st := &f.stages[i]

		w0 := st.d1*st.w1 + st.d2*st.w2 + x
		x = st.a * (w0 + 2*st.w1 + st.w2)

		st.w2 = st.w1
		st.w1 = core.FlushDenormals(w0)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay memory of all sections.
func (f *Filter) Reset() {
	for i := range f.stages {
		f.stages[i].w1 = 0
		f.stages[i].w2 = 0
	}
}

// Order returns the number of second-order sections.
func (f *Filter) Order() int { return len(f.stages) }

// Cutoff returns the effective cutoff frequency in Hz after Nyquist clamping.
func (f *Filter) Cutoff() float64 { return f.cutoffHz }

// SampleRate returns the sample rate the coefficients were computed against.
func (f *Filter) SampleRate() float64 { return f.sampleRate }
