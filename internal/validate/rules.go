package validate

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/studio27se/ehub/internal/article"
	"github.com/studio27se/ehub/internal/markdown"
	"github.com/studio27se/ehub/internal/outline"
)

const keyUID = "uid"

// checkDocument runs the content rules that only apply once a document has
// loaded. They only ever produce warnings.
func (v *Validator) checkDocument(c *collector, ref outline.ArticleRef, doc *article.Document) {
	checkFingerprint(c, ref, doc)
	checkUID(c, ref, doc)
	if v.opts.CheckLinks {
		checkLinks(c, ref, doc)
	}
}

// checkFingerprint reports a declared fingerprint that no longer matches the content.
func checkFingerprint(c *collector, ref outline.ArticleRef, doc *article.Document) {
	declared, ok := doc.DeclaredFingerprint()
	if !ok {
		return
	}
	expected, err := doc.Fingerprint()
	if err != nil {
		c.add(SeverityWarning, ref.ID, "frontmatter-fingerprint", ref.File,
			"Article %s fingerprint could not be computed: %v", ref.ID, err)
		return
	}
	if declared != expected {
		c.add(SeverityWarning, ref.ID, "frontmatter-fingerprint", ref.File,
			"Article %s fingerprint is stale (content changed without updating it)", ref.ID)
	}
}

// checkUID reports a declared uid that is not a UUID.
func checkUID(c *collector, ref outline.ArticleRef, doc *article.Document) {
	if !doc.Has(keyUID) {
		return
	}
	uid, _ := doc.String(keyUID)
	if _, err := uuid.Parse(uid); err != nil {
		c.add(SeverityWarning, ref.ID, "frontmatter-uid", ref.File,
			"Article %s uid %q is not a valid UUID", ref.ID, uid)
	}
}

// checkLinks reports relative links and images whose target file does not exist.
func checkLinks(c *collector, ref outline.ArticleRef, doc *article.Document) {
	dir := filepath.Dir(doc.Path)
	reported := map[string]bool{}
	for _, link := range markdown.ExtractLinks([]byte(doc.Body)) {
		target, ok := markdown.LocalTarget(link.Destination)
		if !ok || reported[target] {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(target))); err == nil {
			continue
		}
		reported[target] = true
		c.add(SeverityWarning, ref.ID, "broken-link", ref.File,
			"Article %s links to missing file: %s", ref.ID, link.Destination)
	}
}
