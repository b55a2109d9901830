package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
	"github.com/cwbudde/algo-consoleeq/dsp/filter/svf"
	"github.com/cwbudde/algo-consoleeq/measure/response"
)

func ExampleMeasure() {
	filter := svf.NewFilter(svf.Peak(1000, 6, core.GainDBToQ(6), 48000))

	r, err := response.Measure(filter, response.Config{SampleRate: 48000})
	if err != nil {
		panic(err)
	}

	fmt.Printf("gain at 1 kHz: %.1f dB\n", r.AtDB(1000))

	// Output:
	// gain at 1 kHz: 6.0 dB
}
