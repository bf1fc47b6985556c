package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, build BuildFunc) *Watcher {
	t.Helper()
	w, err := New(build,
		WithDebounce(20*time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return w
}

func TestAdd_DeduplicatesDirectories(t *testing.T) {
	dir := t.TempDir()
	toc := filepath.Join(dir, "help-center-toc.yaml")
	require.NoError(t, os.WriteFile(toc, []byte("modules: []\n"), 0o600))
	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.Mkdir(sub, 0o750))

	w := newTestWatcher(t, func(context.Context) error { return nil })
	t.Cleanup(func() { _ = w.fs.Close() })

	require.NoError(t, w.Add(toc, dir, sub, filepath.Join(sub, "missing.md")))
	require.Equal(t, []string{dir, sub}, w.Watched())
}

func TestRun_RebuildsOnRelevantChanges(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	w := newTestWatcher(t, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "help-center.json"), []byte("{}"), 0o600))
	require.Never(t, func() bool { return builds.Load() > 0 }, 150*time.Millisecond, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.md"), []byte("Intro"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestRun_KeepsWatchingAfterBuildFailure(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	w := newTestWatcher(t, func(context.Context) error {
		builds.Add(1)
		return io.ErrUnexpectedEOF
	})
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	path := filepath.Join(dir, "help-center-toc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules: []\n"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	first := builds.Load()
	require.NoError(t, os.WriteFile(path, []byte("modules: [] # again\n"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() > first }, 2*time.Second, 10*time.Millisecond)
}
