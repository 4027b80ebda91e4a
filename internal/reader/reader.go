package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"resource-generator/internal/apispec"
	"resource-generator/internal/diagnostic"
)

var (
	// ErrMalformedDocument is returned when the source cannot be decoded at all.
	ErrMalformedDocument = errors.New("malformed spec document")
	// ErrMalformedResponse is returned when a discovery document lacks its envelope.
	ErrMalformedResponse = errors.New("malformed discovery response")
)

// Reader produces commands from a source, in document order.
type Reader interface {
	Read(ctx context.Context, r io.Reader) ([]apispec.Command, error)
}

// Format names a spec source format.
type Format string

const (
	FormatXML       Format = "xml"
	FormatDiscovery Format = "json"
)

// New returns the reader for a format.
func New(format Format, logger *slog.Logger) (Reader, error) {
	switch format {
	case FormatXML:
		return &XMLReader{Logger: logger}, nil
	case FormatDiscovery:
		return &DiscoveryReader{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown spec format %q (expected %q or %q)", format, FormatXML, FormatDiscovery)
	}
}

// FormatForPath picks a format from a file extension; anything but .json is XML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatDiscovery
	}

	return FormatXML
}

// ReadFile opens path and reads it with the reader matching its extension.
func ReadFile(ctx context.Context, path string, logger *slog.Logger) ([]apispec.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spec file %s: %w", path, err)
	}
	defer f.Close()

	rd, err := New(FormatForPath(path), logger)
	if err != nil {
		return nil, err
	}

	cmds, err := rd.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return cmds, nil
}

// finish dedupes the parameters of a freshly built command, reports what was
// dropped, and checks the result.
func finish(cmd apispec.Command, logger *slog.Logger) (apispec.Command, error) {
	var (
		diags   diagnostic.Diagnostics
		dropped []string
	)

	cmd.Request, dropped = apispec.DedupeParameters(cmd.Request)
	addDropped(&diags, cmd.Name, "request", dropped)

	cmd.Response, dropped = apispec.DedupeParameters(cmd.Response)
	addDropped(&diags, cmd.Name, "response", dropped)

	diags.Log(logger)

	if err := cmd.Validate(); err != nil {
		return cmd, err
	}

	return cmd, nil
}

func addDropped(diags *diagnostic.Diagnostics, command, side string, dropped []string) {
	for _, name := range dropped {
		diags.AddWarning(diagnostic.CodeDuplicateField, "dropping duplicate parameter", command, side+"."+name)
	}
}

// primitive builds a non-structured parameter from a declared tag.
func primitive(name, description, tag string, required bool) apispec.Parameter {
	dt, _ := apispec.ParseDataType(tag)

	return apispec.Parameter{
		Name:         name,
		Description:  description,
		Required:     required,
		Kind:         apispec.KindOf(dt, false),
		DeclaredType: tag,
		DataType:     dt,
	}
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
