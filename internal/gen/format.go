package gen

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"
)

// FormatError is returned when generated source cannot be formatted. Source
// holds the unformatted output for inspection.
type FormatError struct {
	Filename string
	Source   []byte
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("formatting %s: %v", e.Filename, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// DebugFilename names the sidecar file for unformatted output. It keeps the .go
// extension so editors highlight it without colliding with real output.
func DebugFilename(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}

var importsOptions = &imports.Options{
	Comments:  true,
	TabIndent: true,
	TabWidth:  8,
}

// formatSource gofmts src and removes unused imports.
func formatSource(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, importsOptions)
	if err != nil {
		return nil, &FormatError{Filename: filename, Source: src, Err: err}
	}

	return out, nil
}
