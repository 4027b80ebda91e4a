package sink

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidPath is returned for paths that are absolute or escape the sink root.
var ErrInvalidPath = errors.New("invalid output path")

// OutputSink receives generated file content. Paths are slash-separated and
// relative to the sink's root.
type OutputSink interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// ValidatePath rejects empty, absolute, and parent-relative paths.
func ValidatePath(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	case strings.ContainsRune(p, '\\'):
		return fmt.Errorf("%w: %q uses backslashes", ErrInvalidPath, p)
	case path.IsAbs(p):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidPath, p)
	}

	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q escapes the output root", ErrInvalidPath, p)
	}

	return nil
}
