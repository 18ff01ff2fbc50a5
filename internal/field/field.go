// Package field implements the colour-to-magnitude projection (C6) and the
// padding/smoothing conditioning pipeline (C7) that turn a raw chart raster
// into the scalar field the DFT stage transforms.
//
// Grounded on original_source/python/plot.py: lrtb(), gen(), smooth(),
// condition(), edge_mean().
package field

import (
	"image"
	"runtime"
	"sync"

	"github.com/navweather/vlfchart/internal/raster"
)

// Field is a 2-D array of small non-negative integers: 0 for background
// (no scale colour matched), i+1 for the i-th scale entry.
type Field struct {
	Rows, Cols int
	V          []int
}

func New(rows, cols int) Field {
	return Field{Rows: rows, Cols: cols, V: make([]int, rows*cols)}
}

func (f Field) At(r, c int) int { return f.V[r*f.Cols+c] }
func (f Field) Set(r, c, v int) { f.V[r*f.Cols+c] = v }

// ToFloat widens a Field into a FloatField for the smoothing/DFT pipeline.
func (f Field) ToFloat() FloatField {
	ff := NewFloat(f.Rows, f.Cols)
	for i, v := range f.V {
		ff.V[i] = float64(v)
	}
	return ff
}

// FloatField is the real-valued counterpart of Field used once smoothing
// introduces fractional values.
type FloatField struct {
	Rows, Cols int
	V          []float64
}

func NewFloat(rows, cols int) FloatField {
	return FloatField{Rows: rows, Cols: cols, V: make([]float64, rows*cols)}
}

func (f FloatField) At(r, c int) float64  { return f.V[r*f.Cols+c] }
func (f FloatField) Set(r, c int, v float64) { f.V[r*f.Cols+c] = v }

func (f FloatField) Clone() FloatField {
	out := NewFloat(f.Rows, f.Cols)
	copy(out.V, f.V)
	return out
}

func (f FloatField) Min() float64 {
	m := f.V[0]
	for _, v := range f.V[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func (f FloatField) Max() float64 {
	m := f.V[0]
	for _, v := range f.V[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func (f FloatField) SubScalar(s float64) {
	for i := range f.V {
		f.V[i] -= s
	}
}

// Floor rounds every cell down and narrows back to a Field, matching the
// template builder's "plt = plt // 1" step.
func (f FloatField) Floor(rows, cols int) Field {
	out := New(rows, cols)
	for i, v := range f.V {
		out.V[i] = int(v)
		if v < 0 && float64(out.V[i]) != v {
			out.V[i]--
		}
	}
	return out
}

// edgeMean is preserved as an explicit call site because the reference
// implementation computes the border slice and then discards it, always
// returning zero. Recomputing a real mean here would silently change the
// normalisation every downstream field depends on.
func edgeMean(FloatField) float64 { return 0 }

// Bounds locates the chart's interior rectangle (the area inside its
// black/white border) as a half-open [t,b) x [l,r) range, via three
// alternating-axis refinement passes over a non-border pixel mask.
func Bounds(img image.Image) (l, r, t, b int) {
	bd := img.Bounds()
	w, h := bd.Dx(), bd.Dy()

	mask := make([][]bool, h)
	for y := 0; y < h; y++ {
		mask[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			px := raster.At(img, bd.Min.X+x, bd.Min.Y+y)
			mask[y][x] = inBorderRange(px[0]) || inBorderRange(px[1]) || inBorderRange(px[2])
		}
	}

	l, r, t, b = 0, w-1, 0, h-1
	for i := 0; i < 3; i++ {
		l, r = columnBound(mask, t, b, l, r)
		t, b = rowBound(mask, t, b, l, r)
	}
	return
}

func inBorderRange(v uint8) bool { return v > 10 && v < 245 }

func columnBound(mask [][]bool, t, b, l, r int) (int, int) {
	n := r - l + 1
	sum := func(c int) bool {
		col := l + c
		for y := t; y <= b; y++ {
			if mask[y][col] {
				return true
			}
		}
		return false
	}
	return runBound(n, sum, l)
}

func rowBound(mask [][]bool, t, b, l, r int) (int, int) {
	n := b - t + 1
	sum := func(ro int) bool {
		row := t + ro
		for x := l; x <= r; x++ {
			if mask[row][x] {
				return true
			}
		}
		return false
	}
	return runBound(n, sum, t)
}

// runBound finds the longest run of indices in [0,n) for which sum(i) is
// true, returning its [begin, end) bounds offset by offset. Faithful port
// of plot.py's bound(): the trailing run (one still open when the loop
// ends) is closed using the loop's final index rather than one past it,
// an asymmetry carried over unchanged from the reference.
func runBound(n int, sum func(i int) bool, offset int) (begin, end int) {
	begin, end = n, 0
	found := false
	temp := 0
	last := -1
	for be := 0; be < n; be++ {
		last = be
		if sum(be) && !found {
			found = true
			temp = be
		} else if !sum(be) && found {
			found = false
			if be-temp > end-begin {
				end = be
				begin = temp
			}
		}
	}
	if found {
		if last-temp > end-begin {
			end = last
			begin = temp
		}
	}
	return begin + offset, end + offset
}

// Project classifies every pixel of the chart interior against scale,
// in scale order, first match wins: a pixel already classified by an
// earlier scale entry is never reconsidered by a later one.
func Project(img image.Image, scale raster.Scale) Field {
	l, r, t, b := Bounds(img)
	rows := b - t
	cols := r - l
	out := New(rows, cols)

	workers := runtime.GOMAXPROCS(0)
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}

	for i, sc := range scale {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for y := w; y < rows; y += workers {
					for x := 0; x < cols; x++ {
						if out.At(y, x) != 0 {
							continue
						}
						px := raster.At(img, l+x, t+y)
						if absDiff8(px[0], sc[0]) < 2 &&
							absDiff8(px[1], sc[1]) < 2 &&
							absDiff8(px[2], sc[2]) < 2 {
							out.Set(y, x, i+1)
						}
					}
				}
			}(w)
		}
		wg.Wait()
	}

	ff := out.ToFloat()
	ff.SubScalar(edgeMean(ff))
	return ff.Floor(rows, cols)
}

func absDiff8(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

var shiftSequence = [7]struct{ shift, axis int }{
	{1, 0}, {1, 1}, {-1, 0}, {-1, 0}, {-1, 1}, {-1, 1}, {1, 0},
}

// Smooth iteratively fills zero-valued cells with the average of their
// rolled neighbours, repeat times. Each roll in the shift sequence is
// applied to the result of the previous one, so the seven steps sample the
// neighbours at (row, col) offsets (-1,0), (-1,-1), (0,-1), (+1,-1), (+1,0),
// (+1,+1), (0,+1), each once; the neighbour at (-1,+1) is not sampled. The
// sequence is reproduced exactly for bit-compatible output.
func Smooth(in FloatField, repeat int) FloatField {
	out := in.Clone()
	out.SubScalar(out.Min())

	for iter := 0; iter < repeat; iter++ {
		tmp := zeroBorder(out)
		add := NewFloat(out.Rows, out.Cols)
		cnt := NewFloat(out.Rows, out.Cols)

		for _, s := range shiftSequence {
			tmp = roll(tmp, s.shift, s.axis)
			for i, v := range tmp.V {
				add.V[i] += v
				if v != 0 {
					cnt.V[i]++
				}
			}
		}

		for i := range out.V {
			if out.V[i] == 0 && cnt.V[i] != 0 {
				out.V[i] += add.V[i] / cnt.V[i]
			}
		}
	}

	out.SubScalar(edgeMean(out))
	return out
}

// Condition pads the field symmetrically by padding on every side and
// then smooths it 10 times, the pre-DFT shaping step.
func Condition(in FloatField, padding int) FloatField {
	return Smooth(padSymmetric(in, padding), 10)
}

func zeroBorder(f FloatField) FloatField {
	out := f.Clone()
	for c := 0; c < out.Cols; c++ {
		out.Set(0, c, 0)
		out.Set(out.Rows-1, c, 0)
	}
	for r := 0; r < out.Rows; r++ {
		out.Set(r, 0, 0)
		out.Set(r, out.Cols-1, 0)
	}
	return out
}

// roll performs a circular shift along axis (0 = rows, 1 = columns),
// matching numpy.roll: elements shifted past an edge reappear at the
// opposite edge.
func roll(f FloatField, shift, axis int) FloatField {
	out := NewFloat(f.Rows, f.Cols)
	if axis == 0 {
		for r := 0; r < f.Rows; r++ {
			src := wrap(r-shift, f.Rows)
			copy(out.V[r*f.Cols:(r+1)*f.Cols], f.V[src*f.Cols:(src+1)*f.Cols])
		}
		return out
	}
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			src := wrap(c-shift, f.Cols)
			out.Set(r, c, f.At(r, src))
		}
	}
	return out
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// padSymmetric pads f by padding cells per side per axis, mirroring the
// edge values (numpy's 'symmetric' mode: the edge pixel is duplicated,
// not skipped).
func padSymmetric(f FloatField, padding int) FloatField {
	out := NewFloat(f.Rows+2*padding, f.Cols+2*padding)
	for r := 0; r < out.Rows; r++ {
		sr := reflect(r-padding, f.Rows)
		for c := 0; c < out.Cols; c++ {
			sc := reflect(c-padding, f.Cols)
			out.Set(r, c, f.At(sr, sc))
		}
	}
	return out
}

func reflect(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}
