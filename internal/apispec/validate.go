package apispec

import (
	"errors"
	"fmt"
)

// ErrMissingName is returned when a command or parameter record has no name.
var ErrMissingName = errors.New("missing name")

// ErrInvalidParameter is returned when a parameter breaks a structural invariant.
var ErrInvalidParameter = errors.New("invalid parameter")

// Validate checks the structural invariants of a command: a non-empty name,
// non-empty and unique parameter names per level, and nesting only on list
// and object parameters.
func (c Command) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("command: %w", ErrMissingName)
	}

	if err := validateParameters(c.Name+".request", c.Request); err != nil {
		return err
	}

	return validateParameters(c.Name+".response", c.Response)
}

func validateParameters(path string, params []Parameter) error {
	seen := make(map[string]struct{}, len(params))

	for i, p := range params {
		if p.Name == "" {
			return fmt.Errorf("%s[%d]: %w", path, i, ErrMissingName)
		}

		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%s.%s: duplicate name: %w", path, p.Name, ErrInvalidParameter)
		}

		seen[p.Name] = struct{}{}

		if p.IsStructured() && !p.Kind.CanNest() {
			return fmt.Errorf("%s.%s: %s parameter cannot carry sub-parameters: %w",
				path, p.Name, p.Kind, ErrInvalidParameter)
		}

		if err := validateParameters(path+"."+p.Name, p.SubParameters); err != nil {
			return err
		}
	}

	return nil
}

// DedupeParameters drops every parameter whose name already appeared earlier in
// the same sequence, recursively. It returns the kept parameters and the dotted
// paths of the dropped ones.
func DedupeParameters(params []Parameter) ([]Parameter, []string) {
	return dedupe("", params)
}

func dedupe(prefix string, params []Parameter) ([]Parameter, []string) {
	if len(params) == 0 {
		return params, nil
	}

	var dropped []string

	seen := make(map[string]struct{}, len(params))
	out := make([]Parameter, 0, len(params))

	for _, p := range params {
		if _, dup := seen[p.Name]; dup {
			dropped = append(dropped, prefix+p.Name)
			continue
		}

		seen[p.Name] = struct{}{}

		if p.IsStructured() {
			var sub []string
			p.SubParameters, sub = dedupe(prefix+p.Name+".", p.SubParameters)
			dropped = append(dropped, sub...)
		}

		out = append(out, p)
	}

	return out, dropped
}
