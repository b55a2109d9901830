package eq

import (
	"fmt"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
	"github.com/cwbudde/algo-consoleeq/dsp/filter/svf"
)

// Fixed coloration filters. These are part of the unit's tonal signature and
// are not user adjustable.
const (
	characterShelfFreqHz = 120.0
	characterShelfQ      = 0.75
	characterShelfGainDB = 1.5
	characterHighpassHz  = 20.0
	characterHighpassQ   = 1.25
	characterPeakFreqHz  = 12000.0
	characterPeakQ       = 0.5
	characterPeakGainDB  = 1.5
	characterFilterCount = 3
)

// CharacterStage is the always-on three-filter coloration chain: a gentle low
// shelf, a subsonic highpass and a broad high-frequency peak per channel.
type CharacterStage struct {
	sampleRate float64
	filters    [NumChannels][characterFilterCount]svf.Filter
}

// NewCharacterStage creates the coloration chain for the given sample rate.
func NewCharacterStage(sampleRate float64) (*CharacterStage, error) {
	c := &CharacterStage{}

	err := c.SetSampleRate(sampleRate)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// SetSampleRate recomputes the three filter coefficient sets. Integrator
// state is preserved so a rate change mid-stream stays click-free.
func (c *CharacterStage) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("character stage sample rate must be positive and finite: %f", sampleRate)
	}

	c.sampleRate = sampleRate

	shelf := svf.LowShelf(characterShelfFreqHz, characterShelfGainDB, characterShelfQ, sampleRate)
	highpass := svf.Highpass(characterHighpassHz, characterHighpassQ, sampleRate)
	peak := svf.Peak(characterPeakFreqHz, characterPeakGainDB, characterPeakQ, sampleRate)

	for ch := range c.filters {
		c.filters[ch][0].SetCoefficients(shelf)
		c.filters[ch][1].SetCoefficients(highpass)
		c.filters[ch][2].SetCoefficients(peak)
	}

	return nil
}

// SampleRate returns the sample rate the coefficients were computed against.
func (c *CharacterStage) SampleRate() float64 { return c.sampleRate }

// ProcessSample runs one sample of one channel through the coloration chain.
func (c *CharacterStage) ProcessSample(x float64, channel int) float64 {
	for i := range c.filters[channel] {
		x = c.filters[channel][i].ProcessSample(x)
	}

	return x
}

// Reset clears all filter state.
func (c *CharacterStage) Reset() {
	for ch := range c.filters {
		for i := range c.filters[ch] {
			c.filters[ch][i].Reset()
		}
	}
}
