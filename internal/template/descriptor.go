// Package template implements the template model (C9): the YAML
// descriptor, the ordered-root store that resolves a template by name, and
// the builder that turns a source image plus user-chosen rectangles into a
// reusable template artefact.
//
// Grounded on original_source/python/buildConfig.py (File_Structure,
// config_update/config_get) for the descriptor shape and persistence
// layout, generalised from a single "./templates" root into the ordered
// user/bundled root pair SPEC_FULL.md's external-interfaces section calls
// for.
package template

import "github.com/navweather/vlfchart/internal/raster"

// Descriptor is the YAML-persisted template configuration.
type Descriptor struct {
	Name  string        `yaml:"name"`
	Scale []raster.RGB  `yaml:"scale"`
	B     [4]int        `yaml:"b"`
	CR    [4]int        `yaml:"cr"`
}
