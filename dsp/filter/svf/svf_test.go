package svf

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
)

// TestPeakZeroGainIsIdentity verifies a 0 dB peak filter passes input through
// bit-exactly: the gain factor collapses M1 to exactly zero.
func TestPeakZeroGainIsIdentity(t *testing.T) {
	c := Peak(1000, 0, 0.7, 48000)
	if c.M1 != 0 {
		t.Fatalf("M1 = %v, want exactly 0", c.M1)
	}
	if c.M0 != 1 || c.M2 != 0 {
		t.Fatalf("mixing coefficients = (%v, %v, %v), want (1, 0, 0)", c.M0, c.M1, c.M2)
	}

	f := NewFilter(c)
	inputs := []float64{0, 1, -0.5, 0.25, 1e-9, -1}
	for _, x := range inputs {
		if got := f.ProcessSample(x); got != x {
			t.Fatalf("ProcessSample(%v) = %v, want identity", x, got)
		}
	}
}

// TestCoefficientIdempotence verifies identical parameters yield bit-identical
// coefficients on repeated derivation.
func TestCoefficientIdempotence(t *testing.T) {
	tests := []struct {
		name string
		make func() Coefficients
	}{
		{"peak", func() Coefficients { return Peak(8000, 6.3, 1.2, 96000) }},
		{"lowshelf", func() Coefficients { return LowShelf(120, 1.5, 0.75, 48000) }},
		{"highpass", func() Coefficients { return Highpass(20, 1.25, 48000) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.make() != tt.make() {
				t.Fatal("repeated derivation produced different coefficients")
			}
		})
	}
}

// TestPeakCenterGain verifies the magnitude at the center frequency matches
// the requested gain for boosts and cuts.
func TestPeakCenterGain(t *testing.T) {
	tests := []struct {
		name   string
		gainDB float64
	}{
		{"boost 12", 12},
		{"boost 3", 3},
		{"cut 6", -6},
		{"cut 12", -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Peak(1000, tt.gainDB, 2.0, 48000)
			got := c.MagnitudeDB(1000, 48000)
			if !core.NearlyEqual(got, tt.gainDB, 1e-6) {
				t.Fatalf("MagnitudeDB(center) = %v dB, want %v dB", got, tt.gainDB)
			}
		})
	}
}

// TestLowShelfDCGain verifies the shelf reaches its full gain at DC and
// returns to unity well above the corner.
func TestLowShelfDCGain(t *testing.T) {
	c := LowShelf(120, 1.5, 0.75, 48000)

	dc := c.MagnitudeDB(0.01, 48000)
	if !core.NearlyEqual(dc, 1.5, 1e-3) {
		t.Fatalf("MagnitudeDB(DC) = %v dB, want 1.5 dB", dc)
	}

	high := c.MagnitudeDB(20000, 48000)
	if math.Abs(high) > 0.05 {
		t.Fatalf("MagnitudeDB(20k) = %v dB, want ~0 dB", high)
	}
}

// TestHighpassResponse verifies strong rejection at DC and unity passband.
func TestHighpassResponse(t *testing.T) {
	c := Highpass(20, 1.25, 48000)

	if db := c.MagnitudeDB(0.5, 48000); db > -30 {
		t.Fatalf("MagnitudeDB(0.5 Hz) = %v dB, want below -30 dB", db)
	}

	if db := c.MagnitudeDB(10000, 48000); math.Abs(db) > 0.1 {
		t.Fatalf("MagnitudeDB(10k) = %v dB, want ~0 dB", db)
	}
}

// TestPrewarpClampsNyquist verifies a center frequency at or above Nyquist is
// clamped rather than producing non-finite coefficients.
func TestPrewarpClampsNyquist(t *testing.T) {
	c := Peak(30000, 6, 1.0, 48000)
	for _, v := range []float64{c.A1, c.A2, c.A3, c.M0, c.M1, c.M2} {
		if !core.IsFinite(v) {
			t.Fatalf("non-finite coefficient for above-Nyquist frequency: %+v", c)
		}
	}
}

// TestSetCoefficientsPreservesState verifies retuning does not clear the
// integrators.
func TestSetCoefficientsPreservesState(t *testing.T) {
	f := NewFilter(Peak(1000, 6, 1.0, 48000))
	for i := 0; i < 32; i++ {
		f.ProcessSample(math.Sin(float64(i) * 0.3))
	}

	before := f.State()
	f.SetCoefficients(Peak(2000, -3, 2.0, 48000))
	if f.State() != before {
		t.Fatalf("State() = %v, want %v", f.State(), before)
	}
}

// TestProcessBlockMatchesPerSample verifies the block path is bit-identical
// to the per-sample path.
func TestProcessBlockMatchesPerSample(t *testing.T) {
	c := Peak(500, -4.5, 1.3, 44100)
	ref := NewFilter(c)
	blk := NewFilter(c)

	buf := make([]float64, 256)
	want := make([]float64, len(buf))
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.11)
		want[i] = ref.ProcessSample(buf[i])
	}

	blk.ProcessBlock(buf)
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("sample %d: block = %v, per-sample = %v", i, buf[i], want[i])
		}
	}

	if blk.State() != ref.State() {
		t.Fatalf("block state %v != per-sample state %v", blk.State(), ref.State())
	}
}

func TestReset(t *testing.T) {
	f := NewFilter(Highpass(20, 1.25, 48000))
	f.ProcessSample(1)
	f.ProcessSample(-1)
	f.Reset()

	if f.State() != [2]float64{} {
		t.Fatalf("State() after Reset = %v, want zeros", f.State())
	}
}

func TestStateRoundTrip(t *testing.T) {
	f := NewFilter(LowShelf(120, 1.5, 0.75, 48000))
	f.ProcessSample(0.8)
	saved := f.State()

	f.ProcessSample(0.3)
	f.SetState(saved)
	if f.State() != saved {
		t.Fatalf("State() = %v, want %v", f.State(), saved)
	}
}
