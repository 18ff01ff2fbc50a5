// Package reconstruct implements the reconstructor (C10): given a decoded
// scalar field, a template, and a scale, it recolours the template's
// marked region and overlays a date-time label.
//
// Grounded on original_source/python/plot.py restore().
package reconstruct

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	xdraw "golang.org/x/image/draw"

	"github.com/navweather/vlfchart/internal/field"
	"github.com/navweather/vlfchart/internal/raster"
)

const (
	markerColour  = 125
	markerChannel = 0 // red
	markerTol     = 25
)

// Render paints p's scale-indexed cells into template's marked region and
// stamps subject + " - " + dtg above or below the chart.
func Render(template image.Image, p field.Field, scale raster.Scale, subject, dtg string) *image.NRGBA {
	bounds := template.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, template, bounds.Min, draw.Src)

	l, r, t, b := field.Bounds(template)

	coloured := image.NewNRGBA(image.Rect(0, 0, p.Cols, p.Rows))
	for y := 0; y < p.Rows; y++ {
		for x := 0; x < p.Cols; x++ {
			j := p.At(y, x)
			if j < 1 || j > len(scale) {
				continue
			}
			c := scale[j-1]
			coloured.SetNRGBA(x, y, color.NRGBA{c[0], c[1], c[2], 255})
		}
	}

	destW, destH := r-l, b-t
	resized := image.NewNRGBA(image.Rect(0, 0, destW, destH))
	xdraw.NearestNeighbor.Scale(resized, resized.Bounds(), coloured, coloured.Bounds(), xdraw.Over, nil)

	for y := t; y < b; y++ {
		for x := l; x < r; x++ {
			px := raster.At(template, x, y)
			if !IsMarked(px) {
				continue
			}
			rc := resized.NRGBAAt(x-l, y-t)
			out.SetNRGBA(x, y, rc)
		}
	}

	drawLabel(out, subject+" - "+dtg, l, t, b, bounds.Max.Y)

	return out
}

// IsMarked reports whether px falls within tolerance of the repaintable
// region's marker colour [125,0,0].
func IsMarked(px raster.RGB) bool {
	dr := int(px[0]) - markerColour
	if dr < 0 {
		dr = -dr
	}
	if dr >= markerTol {
		return false
	}
	dg := int(px[1])
	if dg < 0 {
		dg = -dg
	}
	if dg >= markerTol {
		return false
	}
	db := int(px[2])
	if db < 0 {
		db = -db
	}
	return db < markerTol
}

// drawLabel mirrors plot.py restore()'s two-pass Hershey-style stamp: a
// thick white outline (drawn as four offset passes) then a thin black
// stroke on top, placed in whichever margin (above or below the chart
// rectangle) is larger.
func drawLabel(img *image.NRGBA, text string, l, t, b, imgH int) {
	var y int
	if t < imgH-b {
		y = b + (imgH-b)/2 + 5
	} else {
		y = t / 2
	}

	face := basicfont.Face7x13
	outline := []image.Point{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	for _, off := range outline {
		drawText(img, face, text, l+off.X, y+off.Y, color.White)
	}
	drawText(img, face, text, l, y, color.Black)
}

func drawText(img *image.NRGBA, face font.Face, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
