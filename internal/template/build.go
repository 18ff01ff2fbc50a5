package template

import (
	"image"
	"image/color"

	"github.com/navweather/vlfchart/internal/argerr"
	"github.com/navweather/vlfchart/internal/field"
	"github.com/navweather/vlfchart/internal/legend"
	"github.com/navweather/vlfchart/internal/raster"
)

// markerAdd is the red value written into every plottable pixel (green and
// blue set to zero) so the reconstructor can find the repaintable region
// later.
const markerAdd = 125

// rectFromBounds converts the [y0,y1,x0,x1] convention used throughout the
// wire/descriptor layer into an image.Rectangle.
func rectFromBounds(b [4]int) image.Rectangle {
	return image.Rect(b[2], b[0], b[3], b[1])
}

// Build constructs a template artefact from a source image and the user's
// chosen legend (b) and preserve (cr) rectangles.
//
// Grounded on original_source/python/ARGUS_core_fixed.py create_template()
// and plot.py gen()/smooth().
func Build(img image.Image, name string, b, cr [4]int, reverseOverride *bool) (Descriptor, image.Image, error) {
	bounds := img.Bounds()
	canvas := image.NewNRGBA(bounds)
	white := color.NRGBA{255, 255, 255, 255}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			canvas.SetNRGBA(x, y, white)
		}
	}

	copyRect(canvas, img, rectFromBounds(b))
	copyRect(canvas, img, rectFromBounds(cr))

	legendBox := rectFromBounds(b)
	vertical := (b[1] - b[0]) > (b[3] - b[2])
	scale := legend.ExtractFromBox(img, legendBox, vertical)
	if len(scale) == 0 {
		return Descriptor{}, nil, argerr.New(argerr.LegendExtraction, "could not extract a colour scale from the legend rectangle")
	}

	if reverseOverride != nil {
		if *reverseOverride {
			scale = reverseScale(scale)
		}
	} else {
		scale = legend.Normalise(scale)
	}

	l, r, t, bot := field.Bounds(canvas)
	p := field.Project(canvas, scale)
	smoothed := field.Smooth(p.ToFloat(), 2)
	floored := smoothed.Floor(p.Rows, p.Cols)

	minVal := minOf(floored.V)
	for y := 0; y < floored.Rows; y++ {
		for x := 0; x < floored.Cols; x++ {
			if floored.At(y, x) <= minVal {
				continue
			}
			// Zero every channel before adding the marker, exactly like the
			// reference's `template_image[...] *= mask` step: the result
			// must be exactly [125,0,0], not 125 added onto whatever swatch
			// colour happened to be underneath.
			canvas.SetNRGBA(l+x, t+y, color.NRGBA{markerAdd, 0, 0, 255})
		}
	}
	_ = r
	_ = bot

	return Descriptor{Name: name, Scale: scale, B: b, CR: cr}, canvas, nil
}

func copyRect(dst *image.NRGBA, src image.Image, rect image.Rectangle) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.SetNRGBA(x, y, toNRGBA(raster.At(src, x, y)))
		}
	}
}

func toNRGBA(c raster.RGB) color.NRGBA {
	return color.NRGBA{c[0], c[1], c[2], 255}
}

func reverseScale(scale raster.Scale) raster.Scale {
	out := make(raster.Scale, len(scale))
	for i, c := range scale {
		out[len(scale)-1-i] = c
	}
	return out
}

func minOf(vs []int) int {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
