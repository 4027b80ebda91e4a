package sink

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemorySink collects files in memory.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files == nil {
		s.files = make(map[string][]byte)
	}

	s.files[path] = slices.Clone(content)

	return nil
}

// Get returns the content written to path.
func (s *MemorySink) Get(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.files[path]

	return content, ok
}

// Paths returns the written paths in sorted order.
func (s *MemorySink) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Sorted(maps.Keys(s.files))
}

// Len returns the number of written files.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.files)
}
