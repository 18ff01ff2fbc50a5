package field

import (
	"image"
	"image/color"
	"testing"
)

// solidBordered draws an h x w canvas: a border of the given width filled
// with fill, and an interior filled with inside.
func solidBordered(w, h, border int, fill, inside color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < border || x >= w-border || y < border || y >= h-border {
				img.SetNRGBA(x, y, fill)
			} else {
				img.SetNRGBA(x, y, inside)
			}
		}
	}
	return img
}

func TestBoundsExactInteriorBlackBorder(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 255}
	red := color.NRGBA{200, 30, 30, 255}

	for _, border := range []int{1, 5, 25, 50} {
		img := solidBordered(200, 150, border, black, red)
		l, r, top, b := Bounds(img)

		if l != border || top != border {
			t.Errorf("border=%d: l,t = %d,%d want %d,%d", border, l, top, border, border)
		}
		if r != 200-border || b != 150-border {
			t.Errorf("border=%d: r,b = %d,%d want %d,%d", border, r, b, 200-border, 150-border)
		}
	}
}

func TestBoundsExactInteriorWhiteBorder(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	blue := color.NRGBA{30, 60, 210, 255}

	img := solidBordered(120, 90, 10, white, blue)
	l, r, top, b := Bounds(img)

	if l != 10 || top != 10 || r != 110 || b != 80 {
		t.Fatalf("Bounds = %d,%d,%d,%d want 10,110,10,80", l, r, top, b)
	}
}
