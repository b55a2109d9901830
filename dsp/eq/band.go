package eq

import (
	"github.com/cwbudde/algo-consoleeq/dsp/core"
	"github.com/cwbudde/algo-consoleeq/dsp/filter/svf"
)

// NumBands is the number of fixed equalizer bands.
const NumBands = 10

// NumChannels is the number of audio channels (stereo).
const NumChannels = 2

// bandFrequencies lists the fixed center frequencies in Hz, high band first.
var bandFrequencies = [NumBands]float64{
	16000, 8000, 4000, 2000, 1000, 500, 250, 125, 63, 31,
}

// BandFrequency returns the fixed center frequency of band i in Hz.
func BandFrequency(i int) float64 {
	return bandFrequencies[i]
}

type band struct {
	freq   float64
	gainDB float64
	q      float64
	active bool
}

// BandEqualizer owns one peak filter per band and channel and recomputes
// their coefficients only when a committed gain or the processing rate
// changes. Bands at 0 dB are flagged inactive and skipped entirely: a
// zero-gain peak filter is an exact identity, so the skip is a CPU
// optimization with no audible effect.
type BandEqualizer struct {
	bands   [NumBands]band
	filters [NumBands][NumChannels]svf.Filter

	committedGains [NumBands]float64
	committedRate  float64
	dirty          bool
}

// NewBandEqualizer creates a flat (all bands 0 dB) equalizer. The dirty flag
// starts true so the first UpdateIfNeeded always commits.
func NewBandEqualizer() *BandEqualizer {
	b := &BandEqualizer{dirty: true}
	for i := range b.bands {
		b.bands[i].freq = bandFrequencies[i]
	}

	return b
}

// UpdateIfNeeded recomputes per-band state when any gain differs from the
// committed set or sampleRate differs from the committed rate. It reports
// whether a recompute ran.
//
// Inactive bands keep stale filter coefficients; they are never ticked while
// inactive, and reactivation recomputes them here first.
func (b *BandEqualizer) UpdateIfNeeded(gains [NumBands]float64, sampleRate float64) bool {
	if !b.dirty && sampleRate == b.committedRate && gains == b.committedGains {
		return false
	}

	b.committedGains = gains
	b.committedRate = sampleRate
	b.dirty = false

	for i := range b.bands {
		bd := &b.bands[i]
		bd.gainDB = gains[i]
		bd.q = core.GainDBToQ(gains[i])
		bd.active = gains[i] != 0

		if bd.active {
			c := svf.Peak(bd.freq, bd.gainDB, bd.q, sampleRate)
			for ch := range b.filters[i] {
				b.filters[i][ch].SetCoefficients(c)
			}
		}
	}

	return true
}

// Invalidate forces the next UpdateIfNeeded to recompute regardless of
// parameter comparison.
func (b *BandEqualizer) Invalidate() {
	b.dirty = true
}

// ProcessSample runs one sample of one channel through a single band.
// Inactive bands pass the sample through unchanged.
func (b *BandEqualizer) ProcessSample(x float64, channel, band int) float64 {
	if !b.bands[band].active {
		return x
	}

	return b.filters[band][channel].ProcessSample(x)
}

// ProcessChannel runs one sample of one channel through all active bands in
// series.
func (b *BandEqualizer) ProcessChannel(x float64, channel int) float64 {
	for i := range b.bands {
		if b.bands[i].active {
			x = b.filters[i][channel].ProcessSample(x)
		}
	}

	return x
}

// Active reports whether band i currently applies its filter.
func (b *BandEqualizer) Active(i int) bool { return b.bands[i].active }

// Gain returns the committed gain of band i in dB.
func (b *BandEqualizer) Gain(i int) float64 { return b.bands[i].gainDB }

// Q returns the committed quality factor of band i.
func (b *BandEqualizer) Q(i int) float64 { return b.bands[i].q }

// Reset clears the integrator state of every band filter.
func (b *BandEqualizer) Reset() {
	for i := range b.filters {
		for ch := range b.filters[i] {
			b.filters[i][ch].Reset()
		}
	}
}
