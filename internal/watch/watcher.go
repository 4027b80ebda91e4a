package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Rebuild reruns the whole generation. changed lists the paths that triggered it.
type Rebuild func(ctx context.Context, changed []string) error

// Config tunes how changes are batched into rebuilds.
type Config struct {
	// DebounceWindow is the quiet period that ends a batch.
	DebounceWindow time.Duration
	// MaxBatchSize ends a batch early once that many paths changed.
	MaxBatchSize int
	// Slash-separated doublestar patterns matched against absolute paths.
	IgnorePatterns []string
}

// DefaultConfig ignores hidden files and common editor scratch files.
func DefaultConfig() Config {
	return Config{
		DebounceWindow: 250 * time.Millisecond,
		MaxBatchSize:   100,
		IgnorePatterns: []string{
			"**/.*",
			"**/*~",
			"**/*.swp",
			"**/*.tmp",
		},
	}
}

// Watcher watches individual input files and template directories.
type Watcher struct {
	config    Config
	rebuild   Rebuild
	logger    *slog.Logger
	fsWatcher *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]bool
	roots []string

	rebuildMu sync.Mutex
}

// New returns a watcher that calls rebuild once per batch of changes. Nothing
// is watched until AddFile or AddDir is called. A nil logger discards.
func New(config Config, rebuild Rebuild, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		config:    config,
		rebuild:   rebuild,
		logger:    logger,
		fsWatcher: fsWatcher,
		files:     make(map[string]bool),
	}, nil
}

// AddFile watches a single file. Its parent directory is watched so that
// editors replacing the file by rename are still seen.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	w.mu.Lock()
	w.files[abs] = true
	w.mu.Unlock()

	w.logger.Debug("watching file", "path", abs)

	return nil
}

// AddDir watches a directory tree.
func (w *Watcher) AddDir(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	if err := w.walkAndAdd(abs); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	w.mu.Lock()
	w.roots = append(w.roots, abs)
	w.mu.Unlock()

	return nil
}

func (w *Watcher) walkAndAdd(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}

		w.logger.Debug("watching directory", "path", path)

		return w.fsWatcher.Add(path)
	})
}

// Run dispatches events until ctx is done, then releases the watcher. Rebuilds
// never overlap; a failed rebuild is logged and watching goes on.
func (w *Watcher) Run(ctx context.Context) error {
	debouncer := NewDebouncer(w.config.DebounceWindow, w.config.MaxBatchSize, func(events []Event) {
		w.onFlush(ctx, events)
	})

	defer func() {
		debouncer.Stop()
		_ = w.fsWatcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) && w.underRoot(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldIgnore(event.Name) {
					if err := w.walkAndAdd(event.Name); err != nil {
						w.logger.Warn("watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if e, ok := w.convertEvent(event); ok {
				w.logger.Debug("file event", "path", e.Path, "op", e.Op.String())
				debouncer.Add(e)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch queue overflowed, rebuilding")
				debouncer.Add(Event{Op: fsnotify.Write})

				continue
			}

			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) convertEvent(event fsnotify.Event) (Event, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return Event{}, false
	}

	if !w.relevant(event.Name) {
		return Event{}, false
	}

	return Event{Path: event.Name, Op: event.Op}, true
}

func (w *Watcher) relevant(path string) bool {
	w.mu.Lock()
	isFile := w.files[path]
	w.mu.Unlock()

	if isFile {
		return true
	}

	return w.underRoot(path) && !w.shouldIgnore(path)
}

func (w *Watcher) underRoot(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

func (w *Watcher) shouldIgnore(path string) bool {
	slashed := filepath.ToSlash(path)

	for _, pattern := range w.config.IgnorePatterns {
		if match, _ := doublestar.Match(pattern, slashed); match {
			return true
		}
	}

	return false
}

func (w *Watcher) onFlush(ctx context.Context, events []Event) {
	if ctx.Err() != nil {
		return
	}

	changed := make([]string, 0, len(events))
	for _, e := range events {
		if e.Path != "" {
			changed = append(changed, e.Path)
		}
	}

	w.rebuildMu.Lock()
	defer w.rebuildMu.Unlock()

	w.logger.Info("regenerating", "changed", changed)

	start := time.Now()
	if err := w.rebuild(ctx, changed); err != nil {
		w.logger.Error("regeneration failed", "error", err)
		return
	}

	w.logger.Info("regenerated", "duration", time.Since(start))
}
