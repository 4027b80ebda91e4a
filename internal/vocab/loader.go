package vocab

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns a fresh copy of the built-in vocabulary.
func Default() *Vocabulary {
	v, err := parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in vocabulary: %v", err))
	}

	return v
}

// LoadFile loads and parses a YAML vocabulary file from the given path.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// Parse parses YAML data into a validated Vocabulary, merging it onto the
// built-in one when it sets inherit.
func Parse(data []byte) (*Vocabulary, error) {
	v, err := parse(data)
	if err != nil {
		return nil, err
	}

	if v.Inherit {
		v = Merge(Default(), v)
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

func parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary

	err := yaml.Unmarshal(data, &v)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary YAML: %w", err)
	}

	applyDefaults(&v)

	return &v, nil
}

// applyDefaults normalizes verbs and fills in default values for optional fields.
func applyDefaults(v *Vocabulary) {
	if v.Version == "" {
		v.Version = "1"
	}

	verbs := make([]string, 0, len(v.Verbs))
	for _, verb := range v.Verbs {
		verb = strings.TrimSpace(verb)
		if !slices.Contains(verbs, verb) {
			verbs = append(verbs, verb)
		}
	}

	v.Verbs = verbs

	for name, o := range v.Overrides {
		o.Model = strings.TrimSpace(o.Model)
		o.Role = strings.TrimSpace(o.Role)
		v.Overrides[name] = o
	}

	v.index()
}
