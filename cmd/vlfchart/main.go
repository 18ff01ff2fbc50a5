// Command vlfchart is the CLI surface over internal/chart: create a
// template from a sample chart, compress a chart against a template into a
// short text message, decompress a message back into a chart, and list the
// templates a given environment can see.
//
// Every invocation prints exactly one JSON object to stdout and exits 0 on
// success, 1 on error. Diagnostics go to stderr via logrus, never stdout.
package main

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/navweather/vlfchart/internal/argerr"
	"github.com/navweather/vlfchart/internal/chart"
	"github.com/navweather/vlfchart/internal/raster"
	"github.com/navweather/vlfchart/internal/template"
)

var log = logrus.New()

func main() {
	log.SetOutput(os.Stderr)

	app := &cli.App{
		Name:  "vlfchart",
		Usage: "encode and decode very-low-bandwidth weather chart messages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn, error",
				Value: "info",
				EnvVars: []string{"VLFCHART_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			lvl, err := logrus.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			return nil
		},
		Commands: []*cli.Command{
			createTemplateCommand,
			compressCommand,
			decompressCommand,
			listTemplatesCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// envelopePath is the Message Template resource location: a single file
// alongside the user's writable template root.
func envelopePath() string {
	for _, r := range resolveRoots() {
		if r.Writable {
			return r.Path + "/message_template.txt"
		}
	}
	return "message_template.txt"
}

// resolveRoots reads the two ordered template locations spec.md §6 names:
// a user-writable directory and a bundled, read-only fallback.
func resolveRoots() []template.Root {
	userDir := os.Getenv("VLFCHART_TEMPLATES_DIR")
	if userDir == "" {
		userDir = "./templates"
	}
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		log.WithError(err).Warn("could not create user template directory")
	}

	bundledDir := os.Getenv("VLFCHART_BUNDLED_TEMPLATES_DIR")
	if bundledDir == "" {
		bundledDir = "./templates"
	}

	roots := []template.Root{{Path: userDir, Writable: true}}
	if bundledDir != userDir {
		roots = append(roots, template.Root{Path: bundledDir, Writable: false})
	}
	return roots
}

func newStore() *template.Store {
	return template.NewStore(resolveRoots()...)
}

func emit(payload map[string]interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(payload)
}

func fail(err error) error {
	kind := argerr.Unexpected
	if e, ok := argerr.As(err); ok {
		kind = e.Kind
	}
	log.WithError(err).WithField("kind", kind).Error("command failed")
	_ = emit(map[string]interface{}{
		"status": "error",
		"error":  err.Error(),
	})
	return cli.Exit("", 1)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

var createTemplateCommand = &cli.Command{
	Name:      "create-template",
	Usage:     "build a reusable template from a sample chart",
	ArgsUsage: "<image> <name> <scale-x0> <scale-y0> <scale-x1> <scale-y1> <crop-top> <crop-bottom> <crop-left> <crop-right>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 10 {
			return fail(argerr.New(argerr.BadUsage, "create-template requires 10 positional arguments"))
		}

		imagePath := c.Args().Get(0)
		name := c.Args().Get(1)

		nums := make([]int, 8)
		for i := 0; i < 8; i++ {
			v, err := parseInt(c.Args().Get(2 + i))
			if err != nil {
				return fail(argerr.Wrap(argerr.BadUsage, "parsing numeric argument", err))
			}
			nums[i] = v
		}
		sx0, sy0, sx1, sy1 := nums[0], nums[1], nums[2], nums[3]
		top, bottom, left, right := nums[4], nums[5], nums[6], nums[7]

		b := [4]int{minOf(sy0, sy1), maxOf(sy0, sy1), minOf(sx0, sx1), maxOf(sx0, sx1)}
		cr := [4]int{top, bottom, left, right}

		img, err := raster.Load(imagePath)
		if err != nil {
			return fail(argerr.Wrap(argerr.MissingInput, "loading source image", err))
		}

		store := newStore()
		desc, err := chart.CreateTemplate(store, img, name, b, cr, nil)
		if err != nil {
			return fail(err)
		}

		return emit(map[string]interface{}{
			"status": "ok",
			"name":   desc.Name,
			"scale":  len(desc.Scale),
		})
	},
}

var compressCommand = &cli.Command{
	Name:      "compress",
	Usage:     "encode a chart image into a short text message",
	ArgsUsage: "<image> <name> <dtg> <out>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 4 {
			return fail(argerr.New(argerr.BadUsage, "compress requires 4 positional arguments"))
		}

		imagePath := c.Args().Get(0)
		name := c.Args().Get(1)
		dtg := c.Args().Get(2)
		outPath := c.Args().Get(3)

		img, err := raster.Load(imagePath)
		if err != nil {
			return fail(argerr.Wrap(argerr.MissingInput, "loading source image", err))
		}

		store := newStore()
		desc, _, err := store.Load(name)
		if err != nil {
			return fail(err)
		}

		result, err := chart.Compress(img, desc, dtg, envelopePath(), outPath)
		if err != nil {
			return fail(err)
		}

		return emit(map[string]interface{}{
			"status":       "ok",
			"message_path": result.MessagePath,
			"size_bytes":   result.SizeBytes,
			"max_coeff":    result.MaxCoeff,
		})
	},
}

var decompressCommand = &cli.Command{
	Name:      "decompress",
	Usage:     "decode a text message back into a chart image",
	ArgsUsage: "<message> <out> [name]",
	Action: func(c *cli.Context) error {
		if c.NArg() < 2 {
			return fail(argerr.New(argerr.BadUsage, "decompress requires at least 2 positional arguments"))
		}

		msgPath := c.Args().Get(0)
		outPath := c.Args().Get(1)
		override := c.Args().Get(2)

		store := newStore()
		result, err := chart.Decompress(store, msgPath, outPath, override)
		if err != nil {
			return fail(err)
		}

		return emit(map[string]interface{}{
			"status":     "ok",
			"image_path": result.ImagePath,
			"template":   result.Template,
			"dtg":        result.DTG,
		})
	},
}

var listTemplatesCommand = &cli.Command{
	Name:  "list-templates",
	Usage: "enumerate every template discoverable in the configured locations",
	Action: func(c *cli.Context) error {
		store := newStore()
		names := chart.ListTemplates(store)
		return emit(map[string]interface{}{
			"status":    "ok",
			"templates": names,
		})
	},
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
