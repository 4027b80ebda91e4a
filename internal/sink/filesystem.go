package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FilesystemSink writes to a directory on the local filesystem. Existing files
// are always overwritten.
type FilesystemSink struct {
	Root string
}

// NewFilesystemSink creates a sink writing under root.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root}
}

// WriteFile writes content to path within the root directory, creating parent
// directories as needed. The write goes through a temp file and a rename so a
// reader never sees a partial file.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".resourcegen-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}

	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()

	if writeErr == nil {
		writeErr = closeErr
	}

	if writeErr == nil {
		writeErr = os.Chmod(tmpPath, filePerm)
	}

	if writeErr == nil {
		writeErr = os.Rename(tmpPath, fullPath)
	}

	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing file %s: %w", path, writeErr)
	}

	return nil
}
