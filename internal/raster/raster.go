// Package raster provides the shared pixel-access and file I/O helpers used
// by the legend extractor, field projector, template builder, and
// reconstructor. Source rasters are decoded through
// github.com/disintegration/imaging so any format it registers (PNG, JPEG,
// GIF, BMP, TIFF) can stand in for a chart image, mirroring the original's
// format-agnostic imageio.imread.
package raster

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// RGB is a single 8-bit-per-channel colour triple.
type RGB [3]uint8

// Scale is an ordered sequence of colours, position == magnitude index.
type Scale []RGB

// At returns the RGB triple at pixel (x, y) in img. NRGBA images (the
// common case after Load) are read directly to avoid the alpha
// premultiplication round trip that img.At(x, y).RGBA() otherwise performs.
func At(img image.Image, x, y int) RGB {
	if nrgba, ok := img.(*image.NRGBA); ok {
		i := nrgba.PixOffset(x, y)
		return RGB{nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2]}
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// Load decodes path into an NRGBA raster, using the first frame of an
// animated source (matching imageio.imread's "if len(image.shape) == 4"
// first-frame handling for animated GIFs).
func Load(path string) (*image.NRGBA, error) {
	return imaging.Open(path, imaging.AutoOrientation(false))
}

// Distance is the Euclidean distance between two colours, used by the
// legend extractor's "kept pixel" test.
func Distance(a, b RGB) float64 {
	dr := float64(int(a[0]) - int(b[0]))
	dg := float64(int(a[1]) - int(b[1]))
	db := float64(int(a[2]) - int(b[2]))
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
