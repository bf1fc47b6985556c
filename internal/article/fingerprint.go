package article

import (
	"strings"

	"github.com/inful/mdfp"

	"github.com/studio27se/ehub/internal/frontmatter"
)

// KeyFingerprint is the front matter key that stores a content fingerprint.
const KeyFingerprint = mdfp.FingerprintField

// Keys excluded from the fingerprint hash besides the fingerprint itself.
var fingerprintExcluded = map[string]bool{
	"lastmod": true,
	"uid":     true,
	"aliases": true,
}

// DeclaredFingerprint returns the fingerprint stored in front matter, if any.
func (d *Document) DeclaredFingerprint() (string, bool) {
	v, ok := d.Metadata[KeyFingerprint].(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Fingerprint computes the canonical content fingerprint of the document.
//
// Front matter is serialized as sorted YAML with LF newlines (regardless of
// the source format) minus the fingerprint, lastmod, uid and aliases keys,
// and one trailing newline is trimmed before hashing together with the raw
// body.
func (d *Document) Fingerprint() (string, error) {
	fields := make(map[string]any, len(d.Metadata))
	for k, v := range d.Metadata {
		if k == KeyFingerprint || fingerprintExcluded[k] {
			continue
		}
		fields[k] = v
	}

	serialized := ""
	if len(fields) > 0 {
		out, err := frontmatter.SerializeYAML(fields, frontmatter.Style{Newline: "\n"})
		if err != nil {
			return "", err
		}
		serialized = strings.TrimSuffix(string(out), "\n")
	}

	return mdfp.CalculateFingerprintFromParts(serialized, string(d.rawBody)), nil
}
