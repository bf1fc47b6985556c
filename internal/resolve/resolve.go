// Package resolve merges an article's front matter with its outline defaults.
package resolve

import (
	"github.com/studio27se/ehub/internal/article"
	"github.com/studio27se/ehub/internal/outline"
)

// Article is the canonical merged record for one article reference.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ModuleID string `json:"moduleId"`
	Order    int    `json:"order"`
	Content  string `json:"content"`
}

// Resolve merges doc's declared metadata over ref's outline defaults.
//
// A metadata field overrides the outline value whenever it is declared, even
// when it is zero or empty. ModuleID falls back to moduleID and Content is
// always the document's trimmed body. Resolve performs no I/O.
func Resolve(ref outline.ArticleRef, moduleID string, doc *article.Document) Article {
	a := Article{
		ID:       ref.ID,
		Title:    ref.Title,
		ModuleID: moduleID,
		Order:    ref.OrderOrZero(),
		Content:  doc.Body,
	}
	if v, ok := doc.String(article.KeyID); ok {
		a.ID = v
	}
	if v, ok := doc.String(article.KeyTitle); ok {
		a.Title = v
	}
	if v, ok := doc.String(article.KeyModuleID); ok {
		a.ModuleID = v
	}
	if v, ok := doc.Int(article.KeyOrder); ok {
		a.Order = v
	}
	return a
}
