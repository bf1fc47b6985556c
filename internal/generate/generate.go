// Package generate assembles the help center document tree from an outline
// and its article files.
package generate

import (
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/studio27se/ehub/internal/article"
	"github.com/studio27se/ehub/internal/foundation/errors"
	"github.com/studio27se/ehub/internal/logfields"
	"github.com/studio27se/ehub/internal/outline"
	"github.com/studio27se/ehub/internal/resolve"
)

// TimestampLayout renders the generation time in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Output is the generated document tree.
type Output struct {
	Version   string   `json:"version"`
	Generated string   `json:"generated"`
	Modules   []Module `json:"modules"`
}

// Module is one generated module with its resolved articles.
type Module struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Order       int               `json:"order"`
	Articles    []resolve.Article `json:"articles"`
}

// ArticleCount returns the number of resolved articles across modules.
func (o *Output) ArticleCount() int {
	n := 0
	for _, m := range o.Modules {
		n += len(m.Articles)
	}
	return n
}

// Stats returns the module and article counts for summary output.
func (o *Output) Stats() (modules, articles int) {
	return len(o.Modules), o.ArticleCount()
}

// Source loads article documents by outline-relative path.
type Source interface {
	Load(rel string) (*article.Document, error)
}

// Generator builds Output values.
type Generator struct {
	src    Source
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a generator that loads articles from src.
func New(src Source, opts ...Option) *Generator {
	g := &Generator{src: src, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run walks o in outline order and resolves every article.
//
// An article with no file, or whose file does not exist, is skipped with a
// warning. Malformed or unreadable article files abort generation.
// Uniqueness and required fields are not checked here.
func (g *Generator) Run(o *outline.Outline) (*Output, error) {
	if o == nil {
		return nil, outline.ErrMissingModules
	}

	out := &Output{
		Version:   o.VersionOrDefault(),
		Generated: g.now().UTC().Format(TimestampLayout),
		Modules:   make([]Module, 0, len(o.Modules)),
	}

	for _, m := range o.Modules {
		g.logger.Info("Processing module", logfields.ModuleID(m.ID), slog.String("title", m.Title))

		gm := Module{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Icon:        m.IconOrDefault(),
			Order:       m.Order,
			Articles:    make([]resolve.Article, 0, len(m.Articles)),
		}

		for _, ref := range m.Articles {
			if ref.File == "" {
				g.logger.Warn("Article has no file, skipping",
					logfields.ModuleID(m.ID), logfields.ArticleID(ref.ID))
				continue
			}
			doc, err := g.src.Load(ref.File)
			if err != nil {
				if stderrors.Is(err, article.ErrNotFound) {
					g.logger.Warn("Article file not found, skipping",
						logfields.ModuleID(m.ID), logfields.ArticleID(ref.ID), logfields.File(ref.File))
					continue
				}
				return nil, errors.WrapError(err, errors.CategoryDocs, "load article").
					WithContext("module", m.ID).
					WithContext("file", ref.File).
					Build()
			}

			a := resolve.Resolve(ref, m.ID, doc)
			gm.Articles = append(gm.Articles, a)
			g.logger.Debug("Resolved article", logfields.ArticleID(a.ID), slog.String("title", a.Title))
		}

		out.Modules = append(out.Modules, gm)
	}

	return out, nil
}
