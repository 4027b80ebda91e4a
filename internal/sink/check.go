package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrStale is returned by CheckSink.Err when generated output differs from disk.
var ErrStale = errors.New("generated files are out of date")

// CheckSink compares content against the files under Root and records every path
// whose content would change. It never writes.
type CheckSink struct {
	Root string

	mu      sync.Mutex
	changed []string
}

// NewCheckSink creates a CheckSink comparing against root.
func NewCheckSink(root string) *CheckSink {
	return &CheckSink{Root: root}
}

// WriteFile records path as changed when its content on disk is missing or differs.
func (s *CheckSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	existing, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(path)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err == nil && bytes.Equal(existing, content) {
		return nil
	}

	s.mu.Lock()
	s.changed = append(s.changed, path)
	s.mu.Unlock()

	return nil
}

// Changed returns the paths recorded as changed, in write order.
func (s *CheckSink) Changed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.changed...)
}

// Err returns ErrStale naming every changed path, or nil.
func (s *CheckSink) Err() error {
	changed := s.Changed()
	if len(changed) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrStale, strings.Join(changed, ", "))
}
