package template

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/navweather/vlfchart/internal/argerr"
	"github.com/navweather/vlfchart/internal/atomicfile"
	"github.com/navweather/vlfchart/internal/raster"
)

// Root is one of the ordered locations a Store searches for templates.
// Only a Writable root is eligible to receive new templates.
type Root struct {
	Path     string
	Writable bool
}

// Store resolves templates by name across an ordered list of roots, first
// match wins — generalised from the teacher's name/UID codec registry into
// a directory-backed, two-tier (user-writable, bundled-read-only) lookup.
type Store struct {
	roots []Root
}

func NewStore(roots ...Root) *Store {
	return &Store{roots: roots}
}

func artefactPaths(root, name string) (yamlPath, gifPath string) {
	dir := filepath.Join(root, name)
	return filepath.Join(dir, name+".yaml"), filepath.Join(dir, name+"_template.gif")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolve returns the first root directory containing both artefacts for name.
func (s *Store) resolve(name string) (string, error) {
	for _, r := range s.roots {
		yamlPath, gifPath := artefactPaths(r.Path, name)
		if exists(yamlPath) && exists(gifPath) {
			return filepath.Join(r.Path, name), nil
		}
	}
	return "", argerr.New(argerr.MissingTemplate, fmt.Sprintf("template %q not found in any configured location", name))
}

// Load returns a template's descriptor and its raster.
func (s *Store) Load(name string) (Descriptor, image.Image, error) {
	dir, err := s.resolve(name)
	if err != nil {
		return Descriptor{}, nil, err
	}

	yamlPath := filepath.Join(dir, name+".yaml")
	gifPath := filepath.Join(dir, name+"_template.gif")

	b, err := os.ReadFile(yamlPath)
	if err != nil {
		return Descriptor{}, nil, argerr.Wrap(argerr.InvalidTemplate, "reading template descriptor", err)
	}
	var d Descriptor
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Descriptor{}, nil, argerr.Wrap(argerr.InvalidTemplate, "parsing template descriptor YAML", err)
	}

	img, err := raster.Load(gifPath)
	if err != nil {
		return Descriptor{}, nil, argerr.Wrap(argerr.InvalidTemplate, "reading template raster", err)
	}

	return d, img, nil
}

// Save writes a template's descriptor and raster to the first writable
// root, creating its directory if necessary.
func (s *Store) Save(d Descriptor, img image.Image) error {
	var target *Root
	for i := range s.roots {
		if s.roots[i].Writable {
			target = &s.roots[i]
			break
		}
	}
	if target == nil {
		return argerr.New(argerr.Unexpected, "no writable template location is configured")
	}

	dir := filepath.Join(target.Path, d.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return argerr.Wrap(argerr.Unexpected, "creating template directory", err)
	}

	yamlPath := filepath.Join(dir, d.Name+".yaml")
	gifPath := filepath.Join(dir, d.Name+"_template.gif")

	if err := atomicfile.WriteFile(yamlPath, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(d)
	}); err != nil {
		return argerr.Wrap(argerr.Unexpected, "writing template descriptor", err)
	}

	if err := atomicfile.WriteFile(gifPath, func(w io.Writer) error {
		return gif.Encode(w, img, nil)
	}); err != nil {
		return argerr.Wrap(argerr.Unexpected, "writing template raster", err)
	}

	return nil
}

// List enumerates every template name discoverable across all roots,
// deduplicated and sorted, first-root entries shadowing later ones.
func (s *Store) List() []string {
	seen := map[string]bool{}
	var names []string

	for _, r := range s.roots {
		entries, err := os.ReadDir(r.Path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || seen[e.Name()] {
				continue
			}
			yamlPath, gifPath := artefactPaths(r.Path, e.Name())
			if exists(yamlPath) && exists(gifPath) {
				seen[e.Name()] = true
				names = append(names, e.Name())
			}
		}
	}

	sort.Strings(names)
	return names
}
