// SPDX-License-Identifier: MIT

package cmatrix

import (
	"math"
	"strconv"
)

// Round rounds both parts of z to the given number of decimals.
// Negative decimals leave z unchanged.
func Round(z complex128, decimals int) complex128 {
	if decimals < 0 {
		return z
	}
	p := math.Pow(10, float64(decimals))

	return complex(math.Round(real(z)*p)/p, math.Round(imag(z)*p)/p)
}

// Format renders z as "a", "bi" or "a ± bi" after rounding to decimals
// (decimals < 0 keeps full precision). Unit imaginary parts print as "i".
// The output is valid input for the latex evaluator.
func Format(z complex128, decimals int) string {
	z = Round(z, decimals)
	re, im := real(z), imag(z)
	// fold -0 into 0
	if re == 0 {
		re = 0
	}
	if im == 0 {
		im = 0
	}

	switch {
	case im == 0:
		return formatFloat(re)
	case re == 0:
		return formatImag(im)
	case im < 0:
		return formatFloat(re) + " - " + formatImag(-im)
	default:
		return formatFloat(re) + " + " + formatImag(im)
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func formatImag(x float64) string {
	switch x {
	case 1:
		return "i"
	case -1:
		return "-i"
	default:
		return formatFloat(x) + "i"
	}
}
