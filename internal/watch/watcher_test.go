package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func waitChanged(t *testing.T, ch <-chan []string) []string {
	t.Helper()

	select {
	case changed := <-ch:
		return changed
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
		return nil
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DebounceWindow = 20 * time.Millisecond
	return cfg
}

func TestWatcher_RebuildsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "commands.xml")
	require.NoError(t, os.WriteFile(spec, []byte("<commands/>"), 0o644))

	calls := make(chan []string, 4)
	w, err := New(testConfig(), func(_ context.Context, changed []string) error {
		calls <- changed
		return nil
	}, nil)
	require.NoError(t, err)
	require.NoError(t, w.AddFile(spec))

	startWatcher(t, w)

	require.NoError(t, os.WriteFile(spec, []byte("<commands></commands>"), 0o644))

	changed := waitChanged(t, calls)
	assert.Contains(t, changed, spec)
}

func TestWatcher_IgnoresSiblingsOfWatchedFile(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "commands.xml")
	require.NoError(t, os.WriteFile(spec, []byte("<commands/>"), 0o644))

	w, err := New(testConfig(), func(context.Context, []string) error { return nil }, nil)
	require.NoError(t, err)
	require.NoError(t, w.AddFile(spec))

	assert.True(t, w.relevant(spec))
	assert.False(t, w.relevant(filepath.Join(dir, "other.xml")))
}

func TestWatcher_TemplateDir(t *testing.T) {
	dir := t.TempDir()
	templates := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(filepath.Join(templates, "model"), 0o755))

	calls := make(chan []string, 4)
	w, err := New(testConfig(), func(_ context.Context, changed []string) error {
		calls <- changed
		return nil
	}, nil)
	require.NoError(t, err)
	require.NoError(t, w.AddDir(templates))

	assert.True(t, w.relevant(filepath.Join(templates, "model", "Widget.tmpl")))
	assert.False(t, w.relevant(filepath.Join(templates, "model", ".Widget.tmpl.swp")))
	assert.False(t, w.relevant(filepath.Join(templates, "model", "Widget.tmpl~")))
	assert.False(t, w.relevant(filepath.Join(dir, "elsewhere.tmpl")))

	startWatcher(t, w)

	tmpl := filepath.Join(templates, "model", "Widget.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte("package {{.Package}}\n"), 0o644))

	changed := waitChanged(t, calls)
	assert.Contains(t, changed, tmpl)
}

func TestWatcher_RebuildErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "commands.xml")
	require.NoError(t, os.WriteFile(spec, []byte("<commands/>"), 0o644))

	calls := make(chan []string, 4)
	w, err := New(testConfig(), func(_ context.Context, changed []string) error {
		calls <- changed
		return errors.New("broken spec")
	}, nil)
	require.NoError(t, err)
	require.NoError(t, w.AddFile(spec))

	startWatcher(t, w)

	require.NoError(t, os.WriteFile(spec, []byte("<commands>"), 0o644))
	waitChanged(t, calls)

	// Wait past the debounce window so the second write starts a new batch.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(spec, []byte("<commands/>"), 0o644))
	waitChanged(t, calls)
}
