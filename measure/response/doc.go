// Package response measures the frequency response of sample processors.
//
// A processor is excited with a unit impulse, the captured impulse response
// is transformed with an FFT, and the magnitude spectrum is returned per bin
// together with interpolating accessors. This works for any linear
// time-invariant processor exposing a ProcessSample method, which covers the
// filters in dsp/filter/svf and dsp/oversample as well as whole cascades.
package response
