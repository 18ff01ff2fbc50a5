package dft

import (
	"math"
	"math/rand"
	"testing"

	"github.com/navweather/vlfchart/internal/field"
	"github.com/navweather/vlfchart/internal/zigzag"
)

func TestForwardInverseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rows, cols := 8, 8
	f := field.NewFloat(rows, cols)
	for i := range f.V {
		f.V[i] = rng.Float64() * 100
	}

	b := Forward(f)
	if b.H != rows || b.W != 2*cols {
		t.Fatalf("Forward shape = %d x %d, want %d x %d", b.H, b.W, rows, 2*cols)
	}

	back := Inverse(b)
	for i := range f.V {
		if math.Abs(back.V[i]-f.V[i]) > 1e-6 {
			t.Fatalf("round trip mismatch at %d: got %v, want %v", i, back.V[i], f.V[i])
		}
	}
}

func TestNormalizeScalesToThousand(t *testing.T) {
	rows, cols := 6, 6
	f := field.NewFloat(rows, cols)
	for i := range f.V {
		f.V[i] = float64(i + 1)
	}

	b := Forward(f)
	orig := b.MaxAbs()
	if orig == 0 {
		t.Fatal("expected non-zero spectrum")
	}

	b.Normalize()
	got := b.MaxAbs()
	if math.Abs(got-1000) > 1e-6 {
		t.Fatalf("MaxAbs after Normalize = %v, want 1000", got)
	}
}

func TestExtractInsertTransmitsOnlyZigZagAddresses(t *testing.T) {
	rows, cols := 24, 24
	f := field.NewFloat(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			f.Set(r, c, math.Sin(float64(r))*10+float64(c))
		}
	}

	b := Forward(f)
	b.Normalize()

	n := 5
	coeffs := Extract(b, n)
	reconstructed := Insert(b.H, b.W, n, coeffs)

	transmitted := map[[2]int]bool{}
	for _, a := range zigzag.Mapping(n) {
		transmitted[[2]int{a.I, a.J}] = true
		transmitted[[2]int{b.H - a.I - 1, a.J}] = true
	}

	for r := 0; r < b.H; r++ {
		for c := 0; c < b.W; c++ {
			if !transmitted[[2]int{r, c}] {
				if reconstructed.At(r, c) != 0 {
					t.Fatalf("address (%d,%d) outside the zig-zag prefix was reconstructed non-zero", r, c)
				}
				continue
			}
			orig := b.At(r, c)
			got := reconstructed.At(r, c)
			if orig == 0 {
				continue
			}
			if math.Signbit(orig) != math.Signbit(got) && got != 0 {
				t.Errorf("address (%d,%d): sign flipped, orig=%v got=%v", r, c, orig, got)
			}
		}
	}
}
