// Package quant implements the log-magnitude, sign-included coefficient
// quantiser used to map a DFT coefficient in [-1000, 1000] onto a small
// non-negative code in the alphabet's numeric range, and back.
package quant

import (
	"math"

	"github.com/navweather/vlfchart/internal/alphabet"
)

// MInt is the coefficient magnitude ceiling; |x| > MInt saturates to code 0.
const MInt = 1000

// MChar is the number of positive magnitude bins.
const MChar = (alphabet.Len - 1) / 2

var dx = math.Log10(MInt) / float64(MChar)

// Encode maps a coefficient x in [-1000, 1000] to a code in
// {0, ..., 2*MChar}. |x| > 1000 saturates to 0.
//
// Grounded on original_source/python/textCompression.py coeff_round().
func Encode(x float64) int {
	if math.Abs(x) > MInt {
		return 0
	}

	offset := 0
	if x < 0 {
		offset = 1
	}

	xLog := math.Log10(math.Abs(x))

	out := 0
	for i := 1; i < MChar; i++ {
		lo := float64(i) * dx
		hi := float64(i+1) * dx
		if lo < xLog && xLog <= hi {
			out = i * 2
		}
	}

	return out + offset
}

// Decode is the inverse of Encode: c == 0 or c > alphabet.Len decodes to 0.
//
// Grounded on original_source/python/textCompression.py coeff_unround().
func Decode(c int) float64 {
	if c == 0 || c > alphabet.Len {
		return 0
	}

	offset := c % 2
	i := (c - offset) / 2

	out := math.Pow(10, (float64(i)+1)*dx)
	if offset == 1 {
		out = -out
	}

	return out
}
