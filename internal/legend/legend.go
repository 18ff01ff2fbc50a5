// Package legend extracts an ordered colour scale from a 1-D pixel slice
// through a chart's legend/colour-bar region, and searches a 2-D legend
// box for the slice position that yields the richest extraction.
//
// Grounded on original_source/python/plot.py build_scale() and the
// multi-offset slice search in original_source/python/ARGUS_core_fixed.py
// create_template().
package legend

import (
	"image"

	"github.com/navweather/vlfchart/internal/raster"
)

// slicePositions mirrors the reference implementation's search order:
// a handful of promising offsets tried first, widening outward, so the
// search can stop as soon as a good slice is found without always having
// to scan the whole legend box.
var slicePositions = []int{20, 15, 25, 10, 30, 5, 35, 40, 12, 18, 22, 8, 27, 32, 2, 45}

// Extract scans a 1-D sequence of colours and returns the longest run of
// "kept" pixels: not near-white, not near-black, and at least distance 5
// (Euclidean) from the previously kept pixel. A run resets whenever more
// than 10 consecutive pixels are skipped as black/white, matching the
// reference's bw_count gate.
func Extract(px []raster.RGB) raster.Scale {
	bwCount := len(px)
	var out, run raster.Scale
	last := raster.RGB{} // sentinel distance-from-last baseline (unreachable via uint8 maths below)
	haveLast := false

	for _, r := range px {
		white := r[0] > 250 && r[1] > 250 && r[2] > 250
		black := r[0] < 5 && r[1] < 5 && r[2] < 5

		farEnough := !haveLast || distance(r, last) >= 5

		if !white && !black && farEnough {
			if bwCount > 10 {
				run = raster.Scale{r}
			} else {
				run = append(run, r)
			}
			if len(run) > len(out) {
				out = append(raster.Scale(nil), run...)
			}
			last = r
			haveLast = true
			bwCount = 0
		} else if white || black {
			bwCount++
		}
	}

	return out
}

func distance(a, b raster.RGB) float64 {
	return raster.Distance(a, b)
}

// ExtractFromBox searches a legend box along its longer axis at each of
// slicePositions in turn, keeping the richest (longest) scale found across
// all attempted offsets. vertical selects whether offsets index columns
// (true) or rows (false) of the box.
func ExtractFromBox(img image.Image, box image.Rectangle, vertical bool) raster.Scale {
	var best raster.Scale

	w := box.Dx()
	h := box.Dy()

	for _, d := range slicePositions {
		var slice []raster.RGB
		if vertical {
			if d >= w {
				continue
			}
			slice = make([]raster.RGB, h)
			for y := 0; y < h; y++ {
				slice[y] = raster.At(img, box.Min.X+d, box.Min.Y+y)
			}
		} else {
			if d >= h {
				continue
			}
			slice = make([]raster.RGB, w)
			for x := 0; x < w; x++ {
				slice[x] = raster.At(img, box.Min.X+x, box.Min.Y+d)
			}
		}

		extracted := Extract(slice)
		if len(extracted) > len(best) {
			best = extracted
		}
		if len(best) >= 15 {
			break
		}
	}

	return best
}

// Normalise returns a reversed copy of scale (the input is not modified)
// when its endpoints suggest it runs
// hot-to-cold in the red channel (first redder, last bluer): a chart
// legend is expected to read low-to-high along the scale, and colour
// scales conventionally place red at the high end.
func Normalise(scale raster.Scale) raster.Scale {
	if len(scale) < 2 {
		return scale
	}
	first, last := scale[0], scale[len(scale)-1]
	if first[0] > first[2] && last[2] > last[0] {
		out := make(raster.Scale, len(scale))
		for i, c := range scale {
			out[len(scale)-1-i] = c
		}
		return out
	}
	return scale
}
