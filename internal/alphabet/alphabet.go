// Package alphabet implements the fixed 36-symbol alphabet used to pack the
// wire message, and the mixed-radix change-of-basis conversion that turns a
// run of small-radix digits into base-36 characters (and back).
package alphabet

import "math/big"

// Chars is the fixed symbol alphabet, |Chars| == 36. A symbol's index in
// Chars is its numeric value.
const Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Len is the alphabet size.
const Len = len(Chars)

// Symbol returns the character for digit value v, 0 <= v < Len.
func Symbol(v int) byte { return Chars[v] }

// Value returns the digit value of symbol c, or -1 if c is not in Chars.
func Value(c byte) int {
	for i := 0; i < Len; i++ {
		if Chars[i] == c {
			return i
		}
	}
	return -1
}

// ChangeBasis interprets digits as a big-endian number in base b1 and
// returns the big-endian digit sequence of the same value in base b2.
//
// The count of leading zeros in digits is preserved: it is computed first,
// then re-prepended to the converted output, because the standard
// conversion through a numeric accumulator loses any information carried by
// leading zero digits (original_source/python/textCompression.py
// change_basis()).
func ChangeBasis(digits []int, b1, b2 int) []int {
	dec := new(big.Int)
	exp := big.NewInt(1)
	b1Big := big.NewInt(int64(b1))
	leadZeros := 0

	for i := len(digits) - 1; i >= 0; i-- {
		n := digits[i]
		if n == 0 {
			leadZeros++
		} else {
			leadZeros = 0
		}
		term := new(big.Int).Mul(big.NewInt(int64(n)), exp)
		dec.Add(dec, term)
		exp.Mul(exp, b1Big)
	}

	var out []int
	b2Big := big.NewInt(int64(b2))
	mod := new(big.Int)
	zero := new(big.Int)
	for dec.Cmp(zero) > 0 {
		dec.DivMod(dec, b2Big, mod)
		out = append(out, int(mod.Int64()))
	}

	for i := 0; i < leadZeros; i++ {
		out = append(out, 0)
	}

	reversed := make([]int, len(out))
	for i, v := range out {
		reversed[len(out)-1-i] = v
	}
	return reversed
}
