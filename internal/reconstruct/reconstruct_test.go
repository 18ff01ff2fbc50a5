package reconstruct

import (
	"image"
	"image/color"
	"testing"

	"github.com/navweather/vlfchart/internal/field"
	"github.com/navweather/vlfchart/internal/raster"
)

func buildTemplate(w, h, border int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < border || x >= w-border || y < border || y >= h-border {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{125, 0, 0, 255}) // marked, plottable
			}
		}
	}
	return img
}

func TestRenderPaintsMarkedRegion(t *testing.T) {
	tpl := buildTemplate(40, 40, 5)
	p := field.New(2, 2)
	p.Set(0, 0, 1)
	p.Set(0, 1, 2)
	p.Set(1, 0, 1)
	p.Set(1, 1, 2)

	scale := raster.Scale{{0, 0, 200}, {200, 0, 0}}

	out := Render(tpl, p, scale, "EUCOM", "010000ZJAN2025")
	if out.Bounds() != tpl.Bounds() {
		t.Fatalf("Render output bounds = %v, want %v", out.Bounds(), tpl.Bounds())
	}

	// Interior marked pixels must now be one of the scale colours.
	c := out.NRGBAAt(20, 20)
	isScaleColour := (c.R == 0 && c.B == 200) || (c.R == 200 && c.B == 0)
	if !isScaleColour {
		t.Errorf("interior pixel = %v, want one of the scale colours", c)
	}

	// Border pixels (unmarked) must be untouched.
	b := out.NRGBAAt(0, 0)
	if b.R != 0 || b.G != 0 || b.B != 0 {
		t.Errorf("border pixel modified: got %v, want unchanged black", b)
	}
}
