package field

import "testing"

// A field with no zero cells has nothing to fill; smoothing should settle
// immediately and stay settled regardless of how many times it repeats.
func TestSmootherFixedPointOnUniformField(t *testing.T) {
	f := NewFloat(6, 6)
	for i := range f.V {
		f.V[i] = 7
	}

	base := Smooth(f, 1)
	for _, k := range []int{0, 1, 5, 20} {
		got := Smooth(f, k)
		for i := range got.V {
			if got.V[i] != base.V[i] {
				t.Fatalf("repeat=%d differs from repeat=1 at cell %d: %v vs %v", k, i, got.V[i], base.V[i])
			}
		}
	}
}

func TestSmootherFillsZeroFromNeighbours(t *testing.T) {
	f := NewFloat(5, 5)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			f.Set(r, c, 10)
		}
	}
	f.Set(2, 2, 0) // single interior gap

	out := Smooth(f, 1)
	if out.At(2, 2) == 0 {
		t.Fatalf("interior zero cell was not filled after one smoothing pass")
	}
}

func TestPadSymmetricMirrorsEdges(t *testing.T) {
	f := NewFloat(1, 5)
	for i, v := range []float64{1, 2, 3, 4, 5} {
		f.V[i] = v
	}

	padded := padSymmetric(f, 2)
	want := []float64{2, 1, 1, 2, 3, 4, 5, 5, 4}
	if padded.Cols != len(want) {
		t.Fatalf("padded width = %d, want %d", padded.Cols, len(want))
	}
	for i, v := range want {
		if padded.V[i] != v {
			t.Errorf("padded[%d] = %v, want %v", i, padded.V[i], v)
		}
	}
}
