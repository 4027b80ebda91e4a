package gen

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// templateExt is the file extension of resource templates.
const templateExt = ".tmpl"

//go:embed templates
var embedded embed.FS

// TemplateSource looks up resource templates by name, e.g. "model/Widget".
type TemplateSource interface {
	Lookup(name string) (text string, ok bool)
}

// MapSource serves templates from memory.
type MapSource map[string]string

// Lookup implements TemplateSource.
func (m MapSource) Lookup(name string) (string, bool) {
	text, ok := m[name]
	return text, ok
}

// FSSource serves every *.tmpl file found under a filesystem, keyed by its
// slash path without the extension.
type FSSource struct {
	templates map[string]string
}

// NewFSSource reads all templates of fsys.
func NewFSSource(fsys fs.FS) (*FSSource, error) {
	paths, err := doublestar.Glob(fsys, "**/*"+templateExt, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	s := &FSSource{templates: make(map[string]string, len(paths))}

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", p, err)
		}

		s.templates[strings.TrimSuffix(p, templateExt)] = string(data)
	}

	return s, nil
}

// DirSource reads the templates under a directory, e.g. dir/model/Widget.tmpl.
func DirSource(dir string) (*FSSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("template directory: %s is not a directory", dir)
	}

	return NewFSSource(os.DirFS(dir))
}

// DefaultSource serves the built-in "model/default" and "api/default" templates.
func DefaultSource() *FSSource {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}

	s, err := NewFSSource(sub)
	if err != nil {
		panic(err)
	}

	return s
}

// Lookup implements TemplateSource.
func (s *FSSource) Lookup(name string) (string, bool) {
	text, ok := s.templates[name]
	return text, ok
}

// Names lists the templates served, sorted.
func (s *FSSource) Names() []string {
	return slices.Sorted(maps.Keys(s.templates))
}

// Chain tries its sources in order for the model-specific template, then for
// the default template.
type Chain []TemplateSource

// Resolve returns the name and text of the template to use for a model.
func (c Chain) Resolve(kind, model string) (string, string, error) {
	for _, name := range []string{kind + "/" + model, kind + "/default"} {
		for _, src := range c {
			if text, ok := src.Lookup(name); ok {
				return name, text, nil
			}
		}
	}

	return "", "", fmt.Errorf("no %s template for %s", kind, model)
}
