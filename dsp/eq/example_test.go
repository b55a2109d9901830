package eq_test

import (
	"fmt"

	"github.com/cwbudde/algo-consoleeq/dsp/eq"
)

func ExampleProcessor() {
	p, err := eq.NewProcessor(48000)
	if err != nil {
		panic(err)
	}

	// A gentle smile curve: lift the lows and highs.
	_ = p.SetBandGain(0, 3) // 16 kHz
	_ = p.SetBandGain(9, 3) // 31 Hz
	_ = p.SetTrim(-1.5)

	// Silence in, silence out: the gate keeps the noise floor out of pauses.
	l, r := p.ProcessFrame(0, 0)
	fmt.Println(l, r)

	// Output:
	// 0 0
}

func ExampleBandFrequency() {
	for i := 0; i < eq.NumBands; i++ {
		fmt.Printf("band %d: %.0f Hz\n", i, eq.BandFrequency(i))
	}

	// Output:
	// band 0: 16000 Hz
	// band 1: 8000 Hz
	// band 2: 4000 Hz
	// band 3: 2000 Hz
	// band 4: 1000 Hz
	// band 5: 500 Hz
	// band 6: 250 Hz
	// band 7: 125 Hz
	// band 8: 63 Hz
	// band 9: 31 Hz
}
