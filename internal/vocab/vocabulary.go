package vocab

import (
	"errors"
	"fmt"
	"go/token"
	"maps"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ErrInvalidVocabulary is returned when a vocabulary fails validation.
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Vocabulary is static for a run.
type Vocabulary struct {
	Version string `yaml:"version"`
	// Inherit merges this vocabulary on top of the built-in one.
	Inherit   bool                `yaml:"inherit,omitempty"`
	Verbs     []string            `yaml:"verbs"`
	Overrides map[string]Override `yaml:"overrides,omitempty"`

	verbSet map[string]struct{}
}

// Override pins a command to a model. An empty Role means the command's full name.
type Override struct {
	Model string `yaml:"model"`
	Role  string `yaml:"role,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Override.
// Accepts:
//   - Model name only: "Session"
//   - Model and role: {model: Foo, role: create}
func (o *Override) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var model string

		err := node.Decode(&model)
		if err != nil {
			return err
		}

		*o = Override{Model: model}

		return nil

	case yaml.MappingNode:
		type plain Override

		var p plain

		err := node.Decode(&p)
		if err != nil {
			return err
		}

		*o = Override(p)

		return nil

	default:
		return fmt.Errorf("line %d: expected model name or {model, role}, got %v", node.Line, node.Kind)
	}
}

// IsVerb reports whether s is a recognized verb.
func (v *Vocabulary) IsVerb(s string) bool {
	if v.verbSet == nil {
		v.index()
	}

	_, ok := v.verbSet[s]

	return ok
}

// Lookup returns the override for an exact command name.
func (v *Vocabulary) Lookup(command string) (Override, bool) {
	o, ok := v.Overrides[command]
	return o, ok
}

// OverrideNames returns the override keys in sorted order.
func (v *Vocabulary) OverrideNames() []string {
	return slices.Sorted(maps.Keys(v.Overrides))
}

// Validate checks that every verb is a lower-case word and that every override
// names a model that is an exported Go identifier.
func (v *Vocabulary) Validate() error {
	var problems []string

	for _, verb := range v.Verbs {
		if verb == "" || strings.IndexFunc(verb, func(r rune) bool { return !unicode.IsLower(r) }) >= 0 {
			problems = append(problems, fmt.Sprintf("verb %q must be a lower-case word", verb))
		}
	}

	for _, name := range v.OverrideNames() {
		o := v.Overrides[name]

		switch {
		case name == "":
			problems = append(problems, "override with empty command name")
		case o.Model == "":
			problems = append(problems, fmt.Sprintf("override %s: missing model", name))
		case !token.IsIdentifier(o.Model):
			problems = append(problems, fmt.Sprintf("override %s: model %q is not a Go identifier", name, o.Model))
		case !token.IsExported(o.Model):
			problems = append(problems, fmt.Sprintf("override %s: model %q must start with an upper-case letter", name, o.Model))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidVocabulary, strings.Join(problems, "; "))
	}

	return nil
}

// Merge returns a copy of base with other's verbs added and other's overrides
// replacing base's entries of the same name.
func Merge(base, other *Vocabulary) *Vocabulary {
	out := &Vocabulary{
		Version:   other.Version,
		Verbs:     slices.Clone(base.Verbs),
		Overrides: maps.Clone(base.Overrides),
	}

	out.Verbs = append(out.Verbs, other.Verbs...)

	if out.Overrides == nil {
		out.Overrides = make(map[string]Override, len(other.Overrides))
	}

	maps.Copy(out.Overrides, other.Overrides)

	applyDefaults(out)

	return out
}

func (v *Vocabulary) index() {
	v.verbSet = make(map[string]struct{}, len(v.Verbs))
	for _, verb := range v.Verbs {
		v.verbSet[verb] = struct{}{}
	}
}
