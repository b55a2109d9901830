package svf

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz).
//
// The tick equations form a linear state-space system
//
//	s' = A*s + B*x
//	y  = C*s + D*x
//
// so the response is evaluated exactly as H(z) = C (zI - A)^-1 B + D.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	z := cmplx.Exp(complex(0, w))

	a11 := 2*c.A1 - 1
	a12 := -2 * c.A2
	a21 := 2 * c.A2
	a22 := 1 - 2*c.A3
	b1 := 2 * c.A2
	b2 := 2 * c.A3
	c1 := c.M1*c.A1 + c.M2*c.A2
	c2 := -c.M1*c.A2 + c.M2*(1-c.A3)
	d := c.M0 + c.M1*c.A2 + c.M2*c.A3

	det := (z-complex(a11, 0))*(z-complex(a22, 0)) - complex(a12*a21, 0)
	s1 := ((z-complex(a22, 0))*complex(b1, 0) + complex(a12*b2, 0)) / det
	s2 := (complex(a21*b1, 0) + (z-complex(a11, 0))*complex(b2, 0)) / det

	return complex(d, 0) + complex(c1, 0)*s1 + complex(c2, 0)*s2
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
