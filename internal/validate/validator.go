// Package validate checks a help center outline and its article files for
// structural integrity. Every rule runs; findings are collected, never thrown.
package validate

import (
	stderrors "errors"
	"fmt"

	"github.com/studio27se/ehub/internal/article"
	"github.com/studio27se/ehub/internal/outline"
	"github.com/studio27se/ehub/internal/resolve"
)

// UnnamedScope is used for module findings when the module has no id.
const UnnamedScope = "UNNAMED"

// Source loads article documents by outline-relative path.
type Source interface {
	Load(rel string) (*article.Document, error)
}

// Options toggles optional rules.
type Options struct {
	// CheckLinks reports relative Markdown links whose target file is missing.
	CheckLinks bool
}

// Validator walks an outline and reports issues.
type Validator struct {
	src  Source
	opts Options
}

// New creates a validator that loads articles from src.
func New(src Source, opts Options) *Validator {
	return &Validator{src: src, opts: opts}
}

// Run validates o against the ids already recorded in seen and returns the
// findings together with the updated sets. Nil sets in seen are created.
// Run never mutates o.
func (v *Validator) Run(o *outline.Outline, seen Seen) (*Result, Seen) {
	if seen.Modules == nil {
		seen.Modules = IDSet{}
	}
	if seen.Articles == nil {
		seen.Articles = IDSet{}
	}

	c := &collector{}
	for _, m := range o.Modules {
		v.checkModule(c, m, seen)
	}

	return &Result{
		Issues:       c.issues,
		ModuleCount:  len(seen.Modules),
		ArticleCount: len(seen.Articles),
	}, seen
}

type collector struct {
	issues []Issue
}

func (c *collector) add(sev Severity, scope, rule, file, format string, args ...any) {
	c.issues = append(c.issues, Issue{
		Severity: sev,
		Scope:    scope,
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
	})
}

func (v *Validator) checkModule(c *collector, m outline.Module, seen Seen) {
	switch {
	case m.ID == "":
		c.add(SeverityError, "", "module-id", "", "Module missing required field: id")
	case seen.Modules.Has(m.ID):
		c.add(SeverityError, m.ID, "module-duplicate-id", "", "Duplicate module ID: %s", m.ID)
	default:
		seen.Modules.Add(m.ID)
	}

	if m.Title == "" {
		scope := moduleScope(m.ID)
		c.add(SeverityError, scope, "module-title", "", "Module %s missing required field: title", scope)
	}
	if m.Description == "" {
		c.add(SeverityWarning, m.ID, "module-description", "", "Module %s missing description", m.ID)
	}
	if m.Icon == "" {
		c.add(SeverityWarning, m.ID, "module-icon", "", "Module %s missing icon", m.ID)
	}

	for _, field := range m.Invalid {
		scope := moduleScope(m.ID)
		c.add(SeverityError, scope, "module-field-type", "", "Module %s field %s has an invalid value", scope, field)
	}

	if !m.HasArticles {
		c.add(SeverityWarning, m.ID, "module-articles", "", "Module %s has no articles", m.ID)
		return
	}
	for _, ref := range m.Articles {
		v.checkArticle(c, m, ref, seen)
	}
}

func moduleScope(id string) string {
	if id == "" {
		return UnnamedScope
	}
	return id
}

func (v *Validator) checkArticle(c *collector, m outline.Module, ref outline.ArticleRef, seen Seen) {
	switch {
	case ref.ID == "":
		c.add(SeverityError, "", "article-id", ref.File, "Article missing required field: id")
	case seen.Articles.Has(ref.ID):
		c.add(SeverityError, ref.ID, "article-duplicate-id", ref.File, "Duplicate article ID: %s", ref.ID)
	default:
		seen.Articles.Add(ref.ID)
	}

	if ref.Title == "" {
		c.add(SeverityError, ref.ID, "article-title", ref.File, "Article %s missing required field: title", ref.ID)
	}
	for _, field := range ref.Invalid {
		c.add(SeverityError, ref.ID, "article-field-type", ref.File, "Article %s field %s has an invalid value", ref.ID, field)
	}
	if ref.File == "" {
		c.add(SeverityError, ref.ID, "article-file", "", "Article %s missing required field: file", ref.ID)
		return
	}

	doc, err := v.src.Load(ref.File)
	if err != nil {
		var decodeErr *article.DecodeError
		switch {
		case stderrors.Is(err, article.ErrNotFound):
			c.add(SeverityError, ref.ID, "article-not-found", ref.File, "Article file not found: %s", ref.File)
		case stderrors.As(err, &decodeErr):
			c.add(SeverityError, ref.ID, "article-decode", ref.File, "Error parsing article %s: %s", ref.File, decodeErr.Message())
		default:
			c.add(SeverityError, ref.ID, "article-read", ref.File, "Error reading article %s: %v", ref.File, err)
		}
		return
	}

	if id, ok := doc.String(article.KeyID); ok && id != ref.ID {
		c.add(SeverityWarning, ref.ID, "frontmatter-id-mismatch", ref.File,
			"Frontmatter ID (%s) differs from TOC ID (%s)", id, ref.ID)
	}
	if moduleID, ok := doc.String(article.KeyModuleID); ok && moduleID != m.ID {
		c.add(SeverityWarning, ref.ID, "frontmatter-module-mismatch", ref.File,
			"Frontmatter moduleId (%s) differs from parent module (%s)", moduleID, m.ID)
	}

	if resolve.Resolve(ref, m.ID, doc).Content == "" {
		c.add(SeverityError, ref.ID, "article-content", ref.File, "Article %s has no content", ref.ID)
	}

	v.checkDocument(c, ref, doc)
}
