// Package watch reruns a full generation when the outline or an article changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/studio27se/ehub/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc performs one complete generation.
type BuildFunc func(ctx context.Context) error

// Watcher monitors directories and invokes a BuildFunc after relevant changes
// settle. Builds run on the Run goroutine, one at a time.
type Watcher struct {
	fs       *fsnotify.Watcher
	build    BuildFunc
	debounce time.Duration
	logger   *slog.Logger
	exts     []string
	watched  map[string]struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher. Call Add before Run.
func New(build BuildFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		fs:       fw,
		build:    build,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		exts:     []string{".md", ".markdown", ".yaml", ".yml"},
		watched:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add watches each path. A file path watches its parent directory, which
// survives editors that replace files on save. Already watched directories
// are ignored.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve watch path %s: %w", p, err)
		}
		dir := abs
		if fi, statErr := os.Stat(abs); statErr != nil || !fi.IsDir() {
			dir = filepath.Dir(abs)
		}
		if _, ok := w.watched[dir]; ok {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		w.watched[dir] = struct{}{}
		w.logger.Debug("Watching directory", logfields.Path(dir))
	}
	return nil
}

// Watched returns the watched directories in sorted order.
func (w *Watcher) Watched() []string {
	dirs := make([]string, 0, len(w.watched))
	for d := range w.watched {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)
	return dirs
}

// Run processes events until ctx is cancelled. Build failures are logged and
// watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fs.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case <-timer.C:
			start := time.Now()
			if err := w.build(ctx); err != nil {
				w.logger.Error("Rebuild failed", logfields.Error(err))
				continue
			}
			w.logger.Info("Rebuild complete", logfields.DurationMS(float64(time.Since(start).Milliseconds())))

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return slices.Contains(w.exts, ext)
}
