// Package dft implements the forward/inverse real 2-D DFT codec (C8): a
// conditioned scalar field goes in, a normalised interleaved real/imaginary
// coefficient block comes out, and back. No example in the reference
// corpus ships a Go FFT library whose output layout matches the
// interleaved-column convention this wire format requires (see DESIGN.md),
// so the transform itself is hand-rolled; everything around it (the
// zig-zag address walk, the quantiser) reuses the sibling packages.
//
// Grounded on spec's description of the real 2-D DFT's interleaved-column
// output and original_source/python/textCompression.py msgdata_write()/
// msg_read() for how addresses are read back from the raw array.
package dft

import (
	"math"
	"math/cmplx"

	"github.com/navweather/vlfchart/internal/field"
	"github.com/navweather/vlfchart/internal/quant"
	"github.com/navweather/vlfchart/internal/zigzag"
)

// Block is the real (H x W) array produced by the forward transform: column
// 2c holds the real part and column 2c+1 the imaginary part of logical
// frequency c. Addresses index it directly by raw column, matching the
// wire format's own indexing.
type Block struct {
	H, W int
	V    []float64
}

func newBlock(h, w int) Block {
	return Block{H: h, W: w, V: make([]float64, h*w)}
}

func (b Block) At(r, c int) float64  { return b.V[r*b.W+c] }
func (b Block) set(r, c int, v float64) { b.V[r*b.W+c] = v }

// Forward computes the real 2-D DFT of f and returns it in interleaved
// real/imaginary column form, shape (f.Rows, 2*f.Cols).
func Forward(f field.FloatField) Block {
	spec := dft2D(f.Rows, f.Cols, f.V, -1)
	b := newBlock(f.Rows, 2*f.Cols)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			z := spec[r*f.Cols+c]
			b.set(r, 2*c, real(z))
			b.set(r, 2*c+1, imag(z))
		}
	}
	return b
}

// Inverse reconstructs a real-valued field from an interleaved block via
// the inverse 2-D DFT, discarding the (theoretically zero after a lossless
// round trip) residual imaginary part of the result.
func Inverse(b Block) field.FloatField {
	rows, cols := b.H, b.W/2
	spec := make([]complex128, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			spec[r*cols+c] = complex(b.At(r, 2*c), b.At(r, 2*c+1))
		}
	}
	real2D := idft2D(rows, cols, spec)
	return field.FloatField{Rows: rows, Cols: cols, V: real2D}
}

// MaxAbs returns the largest-magnitude entry in the raw interleaved array.
func (b Block) MaxAbs() float64 {
	m := 0.0
	for _, v := range b.V {
		if av := math.Abs(v); av > m {
			m = av
		}
	}
	return m
}

// Normalize rescales b in place so MaxAbs() == 1000, returning the
// original maximum (0 if b was already all-zero, in which case b is left
// untouched).
func (b Block) Normalize() float64 {
	m := b.MaxAbs()
	if m > 0 {
		scale := 1000.0 / m
		for i := range b.V {
			b.V[i] *= scale
		}
	}
	return m
}

// Extract walks the zig-zag address list for shell count n, reading each
// address's row and its row-symmetric partner H-i-1 at the same column,
// quantising every value read.
//
// Grounded on textCompression.py msgdata_write().
func Extract(b Block, n int) []int {
	addrs := zigzag.Mapping(n)
	out := make([]int, 0, 2*len(addrs))
	for _, a := range addrs {
		for _, i2 := range [2]int{a.I, b.H - a.I - 1} {
			out = append(out, quant.Encode(b.At(i2, a.J)))
		}
	}
	return out
}

// Insert is the inverse of Extract: it builds an (h x w) block with only
// the addresses named by the zig-zag walk populated (everything else is
// implicitly zero), dequantising each transmitted code.
//
// Grounded on textCompression.py msg_read().
func Insert(h, w, n int, coeffs []int) Block {
	b := newBlock(h, w)
	addrs := zigzag.Mapping(n)
	k := 0
	for _, a := range addrs {
		for _, i2 := range [2]int{a.I, h - a.I - 1} {
			if k < len(coeffs) {
				b.set(i2, a.J, quant.Decode(coeffs[k]))
			}
			k++
		}
	}
	return b
}

// dft2D computes the separable 2-D DFT of a real (rows x cols) row-major
// array. sign is -1 for the forward transform, +1 for the inverse (without
// the 1/(rows*cols) normalisation, which idft2D applies).
func dft2D(rows, cols int, in []float64, sign float64) []complex128 {
	// Pass 1: DFT along rows (axis 0), independently per column.
	stage1 := make([]complex128, rows*cols)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			var sum complex128
			for y := 0; y < rows; y++ {
				theta := sign * 2 * math.Pi * float64(r*y) / float64(rows)
				sum += complex(in[y*cols+c], 0) * cmplx.Exp(complex(0, theta))
			}
			stage1[r*cols+c] = sum
		}
	}

	// Pass 2: DFT along columns (axis 1).
	out := make([]complex128, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var sum complex128
			for x := 0; x < cols; x++ {
				theta := sign * 2 * math.Pi * float64(c*x) / float64(cols)
				sum += stage1[r*cols+x] * cmplx.Exp(complex(0, theta))
			}
			out[r*cols+c] = sum
		}
	}
	return out
}

// idft2D computes the real part of the normalised inverse 2-D DFT.
func idft2D(rows, cols int, spec []complex128) []float64 {
	raw := dft2D2(rows, cols, spec, 1)
	out := make([]float64, rows*cols)
	n := float64(rows * cols)
	for i, z := range raw {
		out[i] = real(z) / n
	}
	return out
}

// dft2D2 is dft2D's complex-input counterpart, used only by the inverse
// transform.
func dft2D2(rows, cols int, in []complex128, sign float64) []complex128 {
	stage1 := make([]complex128, rows*cols)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			var sum complex128
			for y := 0; y < rows; y++ {
				theta := sign * 2 * math.Pi * float64(r*y) / float64(rows)
				sum += in[y*cols+c] * cmplx.Exp(complex(0, theta))
			}
			stage1[r*cols+c] = sum
		}
	}

	out := make([]complex128, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var sum complex128
			for x := 0; x < cols; x++ {
				theta := sign * 2 * math.Pi * float64(c*x) / float64(cols)
				sum += stage1[r*cols+x] * cmplx.Exp(complex(0, theta))
			}
			out[r*cols+c] = sum
		}
	}
	return out
}
