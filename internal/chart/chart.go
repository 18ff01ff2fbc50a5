// Package chart is the orchestration layer (EXPANSION): it wires C1-C10 —
// alphabet, quant, zigzag, frame, legend, field, dft, template, reconstruct
// — into the four top-level operations the CLI exposes: compress,
// decompress, create-template, list-templates.
//
// Grounded on original_source/python/ARGUS_core_fixed.py's top-level
// compress_image()/decompress_message()/create_template()/list_templates().
package chart

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"os"

	"github.com/navweather/vlfchart/internal/argerr"
	"github.com/navweather/vlfchart/internal/atomicfile"
	"github.com/navweather/vlfchart/internal/dft"
	"github.com/navweather/vlfchart/internal/field"
	"github.com/navweather/vlfchart/internal/frame"
	"github.com/navweather/vlfchart/internal/reconstruct"
	"github.com/navweather/vlfchart/internal/template"
)

// ShellCount is the fixed zig-zag shell count transmitted in every header.
const ShellCount = 12

// PadWidth is the symmetric padding applied before the DFT and stripped
// after the inverse DFT.
const PadWidth = 50

// CompressResult summarises a successful Compress call.
type CompressResult struct {
	MessagePath string
	SizeBytes   int64
	MaxCoeff    int
	DFTShape    [2]int
}

// Compress projects img against tmpl's scale, conditions and transforms the
// field, and writes the wire message to outPath.
func Compress(img image.Image, tmpl template.Descriptor, dtg, envelopePath, outPath string) (CompressResult, error) {
	p := field.Project(img, tmpl.Scale)
	conditioned := field.Condition(p.ToFloat(), PadWidth)

	maxCoeff := int(conditioned.Max()-conditioned.Min()) - 1

	block := dft.Forward(conditioned)
	block.Normalize()

	coeffs := dft.Extract(block, ShellCount)
	dataBlock := frame.Pack(coeffs)

	intro, outro, err := frame.Envelope(envelopePath)
	if err != nil {
		return CompressResult{}, err
	}

	// The wire header's H/W are the padded field's own shape, not the
	// doubled interleaved-column width of the internal DFT block.
	header := frame.Header{
		H: conditioned.Rows, W: conditioned.Cols, N: ShellCount, MaxCoeff: maxCoeff,
		DTG: dtg, Template: tmpl.Name,
	}

	if err := atomicfile.WriteFile(outPath, func(w io.Writer) error {
		return frame.Compose(w, intro, header, dataBlock, outro)
	}); err != nil {
		return CompressResult{}, argerr.Wrap(argerr.Unexpected, "writing message", err)
	}

	size := int64(0)
	if info, err := os.Stat(outPath); err == nil {
		size = info.Size()
	}

	return CompressResult{
		MessagePath: outPath,
		SizeBytes:   size,
		MaxCoeff:    maxCoeff,
		DFTShape:    [2]int{block.H, block.W},
	}, nil
}

// DecompressResult summarises a successful Decompress call.
type DecompressResult struct {
	ImagePath string
	Template  string
	DTG       string
}

// Decompress parses the message at messagePath, reconstructs the scalar
// field, and renders the result against the named template, writing a GIF
// to outPath. If templateOverride is non-empty it replaces the template
// named in the message header.
func Decompress(store *template.Store, messagePath, outPath, templateOverride string) (DecompressResult, error) {
	raw, err := os.ReadFile(messagePath)
	if err != nil {
		return DecompressResult{}, argerr.Wrap(argerr.MissingInput, "reading message", err)
	}

	header, coeffs, err := frame.Unpack(string(raw))
	if err != nil {
		return DecompressResult{}, argerr.Wrap(argerr.BadUsage, "parsing message", err)
	}

	name := header.Template
	if templateOverride != "" {
		name = templateOverride
	}

	desc, tmplImg, err := store.Load(name)
	if err != nil {
		return DecompressResult{}, err
	}

	// header.W is the padded field's true column count; Insert's internal
	// block needs the doubled interleaved real/imaginary width.
	block := dft.Insert(header.H, 2*header.W, header.N, coeffs)
	recovered := dft.Inverse(block)

	clipNegatives(recovered)
	rescale(recovered, float64(header.MaxCoeff))
	stripped := stripPad(recovered, PadWidth)
	p := roundAndShift(stripped)

	out := reconstruct.Render(tmplImg, p, desc.Scale, desc.Name, header.DTG)

	// The GIF palette starts with the scale colours so painted cells keep
	// their exact colour; everything else maps to the nearest Plan9 entry
	// without dithering.
	pal := make(color.Palette, 0, 256)
	for _, c := range desc.Scale {
		if len(pal) < 256 {
			pal = append(pal, color.NRGBA{c[0], c[1], c[2], 255})
		}
	}
	pal = append(pal, palette.Plan9[:256-len(pal)]...)
	paletted := image.NewPaletted(out.Bounds(), pal)
	draw.Draw(paletted, paletted.Bounds(), out, out.Bounds().Min, draw.Src)

	if err := atomicfile.WriteFile(outPath, func(w io.Writer) error {
		return gif.Encode(w, paletted, nil)
	}); err != nil {
		return DecompressResult{}, argerr.Wrap(argerr.Unexpected, "writing reconstructed image", err)
	}

	return DecompressResult{ImagePath: outPath, Template: name, DTG: header.DTG}, nil
}

// CreateTemplate builds a template artefact from img and persists it via
// store.
func CreateTemplate(store *template.Store, img image.Image, name string, b, cr [4]int, reverseOverride *bool) (template.Descriptor, error) {
	desc, raster, err := template.Build(img, name, b, cr, reverseOverride)
	if err != nil {
		return template.Descriptor{}, err
	}
	if err := store.Save(desc, raster); err != nil {
		return template.Descriptor{}, err
	}
	return desc, nil
}

// ListTemplates enumerates every template name discoverable by store.
func ListTemplates(store *template.Store) []string {
	return store.List()
}

func clipNegatives(f field.FloatField) {
	for i, v := range f.V {
		if v < 0 {
			f.V[i] = 0
		}
	}
}

func rescale(f field.FloatField, maxCoeff float64) {
	m := f.Max()
	if m > 0 {
		s := maxCoeff / m
		for i := range f.V {
			f.V[i] *= s
		}
	}
}

// stripPad removes pad cells from every side of f, undoing Condition's
// symmetric padding.
func stripPad(f field.FloatField, pad int) field.FloatField {
	rows := f.Rows - 2*pad
	cols := f.Cols - 2*pad
	out := field.NewFloat(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.Set(r, c, f.At(r+pad, c+pad))
		}
	}
	return out
}

// roundAndShift rounds every cell to the nearest integer and adds one,
// restoring the P == scale-index+1 convention the projector produced.
func roundAndShift(f field.FloatField) field.Field {
	out := field.New(f.Rows, f.Cols)
	for i, v := range f.V {
		out.V[i] = int(math.Round(v)) + 1
	}
	return out
}
