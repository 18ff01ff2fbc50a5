package field

import (
	"image"
	"image/color"
	"testing"

	"github.com/navweather/vlfchart/internal/raster"
)

func TestProjectFirstMatchWins(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 255}
	mid := color.NRGBA{100, 100, 100, 255}

	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 1 || x >= 9 || y < 1 || y >= 9 {
				img.SetNRGBA(x, y, black)
			} else {
				img.SetNRGBA(x, y, mid)
			}
		}
	}

	scale := raster.Scale{
		{100, 100, 100},
		{101, 101, 101}, // within tolerance of the first entry too
	}

	f := Project(img, scale)
	for i, v := range f.V {
		if v != 1 {
			t.Fatalf("cell %d classified as %d, want 1 (first match wins)", i, v)
		}
	}
}

func TestProjectBackgroundStaysZero(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 255}
	gray := color.NRGBA{50, 50, 50, 255} // inside the non-border range (10,245) but far from the scale colour

	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if x < 1 || x >= 5 || y < 1 || y >= 5 {
				img.SetNRGBA(x, y, black)
			} else {
				img.SetNRGBA(x, y, gray)
			}
		}
	}

	scale := raster.Scale{{200, 200, 200}}
	f := Project(img, scale)
	for i, v := range f.V {
		if v != 0 {
			t.Fatalf("cell %d classified as %d, want 0 (no scale colour present)", i, v)
		}
	}
}
