package eq

import (
	"fmt"
	"math/rand/v2"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
	"github.com/cwbudde/algo-consoleeq/dsp/envelope"
	"github.com/cwbudde/algo-consoleeq/dsp/oversample"
)

const (
	// trimRangeDB bounds the trim control; band gains share the same range.
	trimRangeDB     = 12.0
	bandGainRangeDB = 12.0

	// noiseFloorDB is the peak level of the white noise injected while the
	// gate is open.
	noiseFloorDB = -95.0

	// Gate detector time constants. Zero attack means the gate opens on the
	// first non-silent sample.
	gateAttackMs  = 0.0
	gateReleaseMs = 50.0

	// Internal oversampling. The anti-alias low-pass runs at twice the host
	// rate with its corner just below the host Nyquist.
	oversampleFactor     = 2.0
	upsamplerSections    = 4
	upsamplerCutoffRatio = 0.475 // of the host sample rate
)

// Processor is the full per-sample stereo signal chain: envelope-gated
// processing with a noise floor, trim gain, the fixed character stage, and
// the ten-band equalizer running at twice the host rate.
//
// Band gains and trim may be written from a control-rate path while the audio
// thread processes frames; values are latched into coefficients at the next
// frame, so a concurrent write is heard at worst one sample late. The
// Processor itself never locks or allocates on the audio path.
type Processor struct {
	sampleRate float64

	// Live parameters, written by setters and compared against the committed
	// values once per frame.
	trimDB float64
	gains  [NumBands]float64

	committedTrimDB float64
	committedRate   float64
	trimGain        float64

	bands     *BandEqualizer
	character *CharacterStage
	followers [NumChannels]*envelope.Follower
	upsampler [NumChannels]*oversample.Filter

	rng       *rand.Rand
	noiseGain float64
}

// NewProcessor creates a flat-response processor for the given host sample
// rate. All filter and envelope memory is allocated here; processing never
// allocates.
func NewProcessor(sampleRate float64, opts ...Option) (*Processor, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("eq: sample rate must be positive and finite: %f", sampleRate)
	}

	cfg := config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	p := &Processor{
		sampleRate:    sampleRate,
		committedRate: sampleRate,
		trimGain:      1,
		bands:         NewBandEqualizer(),
		rng:           cfg.rng,
		noiseGain:     core.DBToLinear(noiseFloorDB),
	}

	character, err := NewCharacterStage(sampleRate)
	if err != nil {
		return nil, err
	}
	p.character = character

	for ch := range p.followers {
		follower, err := envelope.NewFollower(gateAttackMs, gateReleaseMs, sampleRate)
		if err != nil {
			return nil, err
		}
		p.followers[ch] = follower
	}

	for ch := range p.upsampler {
		up, err := oversample.NewFilter(
			upsamplerCutoffRatio*sampleRate,
			oversampleFactor*sampleRate,
			upsamplerSections,
		)
		if err != nil {
			return nil, err
		}
		p.upsampler[ch] = up
	}

	return p, nil
}

// SetTrim sets the output trim in dB, clamped to [-12, 12].
func (p *Processor) SetTrim(db float64) error {
	if !core.IsFinite(db) {
		return fmt.Errorf("eq: trim must be finite: %f", db)
	}

	p.trimDB = core.Clamp(db, -trimRangeDB, trimRangeDB)

	return nil
}

// SetBandGain sets the gain of band i in dB, clamped to [-12, 12]. A gain of
// exactly 0 deactivates the band.
func (p *Processor) SetBandGain(i int, db float64) error {
	if i < 0 || i >= NumBands {
		return fmt.Errorf("eq: band index out of range [0, %d): %d", NumBands, i)
	}

	if !core.IsFinite(db) {
		return fmt.Errorf("eq: band gain must be finite: %f", db)
	}

	p.gains[i] = core.Clamp(db, -bandGainRangeDB, bandGainRangeDB)

	return nil
}

// SetSampleRate updates the host sample rate. The filters and detectors are
// reconfigured at the next processed frame, preserving their state.
func (p *Processor) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("eq: sample rate must be positive and finite: %f", sampleRate)
	}

	p.sampleRate = sampleRate

	return nil
}

// Trim returns the trim gain in dB.
func (p *Processor) Trim() float64 { return p.trimDB }

// BandGain returns the gain of band i in dB.
func (p *Processor) BandGain(i int) float64 { return p.gains[i] }

// SampleRate returns the host sample rate in Hz.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// Bands exposes the band equalizer for inspection.
func (p *Processor) Bands() *BandEqualizer { return p.bands }

// Character exposes the coloration stage for inspection.
func (p *Processor) Character() *CharacterStage { return p.character }

// ProcessFrame processes one stereo frame and returns the output frame.
//
// The pipeline per frame: latch parameter changes, advance both envelope
// followers, and bail out with exact zeros while either channel is silent.
// Otherwise each channel gets the noise floor, trim, character stage, and the
// band equalizer run at twice the host rate via zero-stuffing; the
// interpolated sample is processed for filter-state continuity and dropped.
func (p *Processor) ProcessFrame(left, right float64) (outLeft, outRight float64) {
	p.refresh()

	levelL := p.followers[0].ProcessSample(left)
	levelR := p.followers[1].ProcessSample(right)

	if levelL == 0 || levelR == 0 {
		return 0, 0
	}

	return p.processChannel(left, 0), p.processChannel(right, 1)
}

// ProcessBlock processes equal-length left/right channel blocks in place.
func (p *Processor) ProcessBlock(left, right []float64) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		left[i], right[i] = p.ProcessFrame(left[i], right[i])
	}
}

// Reset clears all filter and envelope state while keeping parameters.
func (p *Processor) Reset() {
	p.bands.Reset()
	p.character.Reset()

	for ch := range p.followers {
		p.followers[ch].Reset()
		p.upsampler[ch].Reset()
	}
}

func (p *Processor) processChannel(x float64, channel int) float64 {
	x += p.noiseGain * (p.rng.Float64()*2 - 1)
	x *= p.trimGain
	x = p.character.ProcessSample(x, channel)

	// Upsample by two: the filter sees the real sample followed by a stuffed
	// zero. The factor 2 restores the passband level lost to zero-stuffing.
	up := p.upsampler[channel]
	direct := up.ProcessSample(2 * x)
	stuffed := up.ProcessSample(0)

	direct = p.bands.ProcessChannel(direct, channel)
	p.bands.ProcessChannel(stuffed, channel)

	// Decimation keeps only the direct sample; see the oversample package
	// docs for why no reconstruction filter is applied.
	return direct
}

// refresh latches live parameters into committed DSP state. It runs once per
// frame and is a handful of comparisons in the common no-change case.
func (p *Processor) refresh() {
	if p.sampleRate != p.committedRate {
		p.committedRate = p.sampleRate

		// Rates were validated in SetSampleRate; these cannot fail.
		_ = p.character.SetSampleRate(p.sampleRate)
		for ch := range p.followers {
			_ = p.followers[ch].SetSampleRate(p.sampleRate)
			_ = p.upsampler[ch].Configure(
				upsamplerCutoffRatio*p.sampleRate,
				oversampleFactor*p.sampleRate,
			)
		}
	}

	if p.trimDB != p.committedTrimDB {
		p.committedTrimDB = p.trimDB
		p.trimGain = core.DBToLinear(p.trimDB)
	}

	p.bands.UpdateIfNeeded(p.gains, oversampleFactor*p.sampleRate)
}
