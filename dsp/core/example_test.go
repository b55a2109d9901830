package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-consoleeq/dsp/core"
)

func ExampleDBToLinear() {
	fmt.Printf("%.4f\n", core.DBToLinear(-6))
	fmt.Printf("%.4f\n", core.DBToLinear(0))

	// Output:
	// 0.5012
	// 1.0000
}

func ExampleGainDBToQ() {
	fmt.Printf("flat: %.6f\n", core.GainDBToQ(0))
	fmt.Printf("full boost: %.6f\n", core.GainDBToQ(12))
	fmt.Printf("full cut: %.6f\n", core.GainDBToQ(-12))

	// Output:
	// flat: 0.126984
	// full boost: 5.763566
	// full cut: 5.763566
}

func ExampleEnsureLen() {
	buf := make([]float64, 2, 4)
	buf[0], buf[1] = 1, 2
	buf = core.EnsureLen(buf, 4)

	copied := core.CopyInto(buf[2:], []float64{3, 4})
	fmt.Println(copied, buf)

	core.Zero(buf[:2])
	fmt.Println(buf)

	// Output:
	// 2 [1 2 3 4]
	// [0 0 3 4]
}
