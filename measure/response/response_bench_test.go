package response

import (
	"testing"

	"github.com/cwbudde/algo-consoleeq/dsp/filter/svf"
)

func BenchmarkMeasure(b *testing.B) {
	cfg := Config{SampleRate: 48000, FFTSize: 4096}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		filter := svf.NewFilter(svf.Peak(1000, 6, 1, 48000))
		if _, err := Measure(filter, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
