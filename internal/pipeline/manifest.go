package pipeline

import (
	"slices"

	"resource-generator/internal/apispec"
	"resource-generator/internal/gen"
)

// Manifest accumulates the units generated during one run.
type Manifest struct {
	commands []apispec.Command
	models   []string
	files    []string
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{}
}

// AddCommand records a generated command and its file.
func (m *Manifest) AddCommand(cmd apispec.Command, file string) {
	m.commands = append(m.commands, cmd)
	m.files = append(m.files, file)
}

// AddModel records a generated model and its files.
func (m *Manifest) AddModel(model string, files ...string) {
	m.models = append(m.models, model)
	m.files = append(m.files, files...)
}

// AddFile records a file that belongs to no command or model.
func (m *Manifest) AddFile(file string) {
	m.files = append(m.files, file)
}

// CommandNames returns the recorded command names in order.
func (m *Manifest) CommandNames() []string {
	return apispec.Names(m.commands)
}

// Models returns the recorded model names in order.
func (m *Manifest) Models() []string {
	return slices.Clone(m.models)
}

// Files returns every recorded file in order.
func (m *Manifest) Files() []string {
	return slices.Clone(m.files)
}

// Units returns what the finalization step renders from.
func (m *Manifest) Units() gen.Units {
	return gen.Units{
		Commands: slices.Clone(m.commands),
		Models:   slices.Clone(m.models),
	}
}
