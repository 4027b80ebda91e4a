package diagnostic

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Diagnostic codes.
const (
	CodeUnclassified     = "unclassified_command"
	CodeCollision        = "role_collision"
	CodeEmptyNoun        = "empty_noun"
	CodeUnknownType      = "unknown_type"
	CodeDuplicateField   = "duplicate_field"
	CodeOverride         = "override"
	CodeHeuristic        = "heuristic"
	CodeUnusedOverride   = "unused_override"
	CodeTemplateFallback = "template_fallback"
)

// Diagnostics holds all diagnostic information from one run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Command names the command this relates to (if any).
	Command string
	// Field identifies which parameter this relates to (if any).
	Field string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, command, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Command:  command,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, command, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Command:  command,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, command, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Command:  command,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// ByCode returns the error diagnostics carrying any of the given codes, in order.
func (d *Diagnostics) ByCode(codes ...string) []Diagnostic {
	var out []Diagnostic

	for _, e := range d.Errors {
		if slices.Contains(codes, e.Code) {
			out = append(out, e)
		}
	}

	return out
}

// Count returns how many diagnostics of any severity carry code.
func (d *Diagnostics) Count(code string) int {
	n := 0

	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, e := range list {
			if e.Code == code {
				n++
			}
		}
	}

	return n
}

// Err returns a combined error from all error diagnostics, or nil if there are none.
// The combined error wraps base so callers can match it with errors.Is.
func (d *Diagnostics) Err(base error) error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	if base == nil {
		return errors.New(strings.Join(parts, "; "))
	}

	return fmt.Errorf("%w: %s", base, strings.Join(parts, "; "))
}

// Log writes warnings at warn level and infos at debug level.
func (d *Diagnostics) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, w := range d.Warnings {
		logger.Warn(w.Message, w.attrs()...)
	}

	for _, i := range d.Infos {
		logger.Debug(i.Message, i.attrs()...)
	}
}

func (d Diagnostic) attrs() []any {
	attrs := []any{slog.String("code", d.Code)}
	if d.Command != "" {
		attrs = append(attrs, slog.String("command", d.Command))
	}

	if d.Field != "" {
		attrs = append(attrs, slog.String("field", d.Field))
	}

	return attrs
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Command != "" {
		prefix = append(prefix, "["+d.Command+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
