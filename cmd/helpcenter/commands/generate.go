package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/studio27se/ehub/internal/article"
	"github.com/studio27se/ehub/internal/config"
	"github.com/studio27se/ehub/internal/generate"
	"github.com/studio27se/ehub/internal/logfields"
	"github.com/studio27se/ehub/internal/outline"
	"github.com/studio27se/ehub/internal/watch"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Root   string `help:"Documentation root that article paths are relative to"`
	TOC    string `name:"toc" help:"Outline file, relative to the root unless absolute"`
	Output string `short:"o" help:"Output file, relative to the root unless absolute"`
	Watch  bool   `short:"w" help:"Regenerate whenever the outline or an article changes"`
}

// Run executes the generate command.
func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	applyPathFlags(cfg, c.Root, c.TOC, c.Output)

	if !c.Watch {
		_, err := runGenerate(g.Logger, cfg)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return watchGenerate(ctx, g.Logger, cfg)
}

func applyPathFlags(cfg *config.Config, root, toc, output string) {
	if root != "" {
		cfg.Root = root
	}
	if toc != "" {
		cfg.TOC = toc
	}
	if output != "" {
		cfg.Output = output
	}
}

// runGenerate performs one full generation and returns the outline it used.
func runGenerate(logger *slog.Logger, cfg *config.Config) (*outline.Outline, error) {
	start := time.Now()

	o, err := outline.Load(cfg.TOCPath())
	if err != nil {
		return nil, err
	}

	gen := generate.New(article.NewLoader(cfg.Root), generate.WithLogger(logger))
	out, err := gen.Run(o)
	if err != nil {
		return nil, err
	}
	if err := generate.Write(cfg.OutputPath(), out); err != nil {
		return nil, err
	}

	modules, articles := out.Stats()
	logger.Info("Help center generated",
		logfields.Path(cfg.OutputPath()),
		logfields.Modules(modules),
		logfields.Articles(articles),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return o, nil
}

// watchGenerate generates once, then regenerates on change until ctx ends.
// New article directories are picked up after each successful rebuild.
func watchGenerate(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	o, err := runGenerate(logger, cfg)
	if err != nil {
		return err
	}

	var w *watch.Watcher
	w, err = watch.New(func(context.Context) error {
		o, err := runGenerate(logger, cfg)
		if err != nil {
			return err
		}
		return w.Add(watchPaths(cfg, o)...)
	}, watch.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := w.Add(watchPaths(cfg, o)...); err != nil {
		return err
	}

	logger.Info("Watching for changes", logfields.Path(cfg.TOCPath()))
	return w.Run(ctx)
}

// watchPaths lists the outline and every existing article directory.
func watchPaths(cfg *config.Config, o *outline.Outline) []string {
	loader := article.NewLoader(cfg.Root)
	paths := []string{cfg.TOCPath()}
	for _, m := range o.Modules {
		for _, ref := range m.Articles {
			if ref.File == "" {
				continue
			}
			dir := filepath.Dir(loader.Resolve(ref.File))
			if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
				paths = append(paths, dir)
			}
		}
	}
	return paths
}
