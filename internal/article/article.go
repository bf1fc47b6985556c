// Package article loads article documents from the documentation root and
// splits them into front matter metadata and a trimmed body.
package article

import (
	stderrors "errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/studio27se/ehub/internal/foundation/errors"
	"github.com/studio27se/ehub/internal/frontmatter"
)

// Metadata keys the resolver reads.
const (
	KeyID       = "id"
	KeyTitle    = "title"
	KeyModuleID = "moduleId"
	KeyOrder    = "order"
)

// ErrNotFound reports that no file exists at the resolved article path.
var ErrNotFound = stderrors.New("article file not found")

// DecodeError reports malformed front matter. Message carries the parser's text.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Message returns the underlying parser message.
func (e *DecodeError) Message() string {
	return e.Err.Error()
}

// Document is a decoded article file.
type Document struct {
	// Path is the resolved filesystem path.
	Path     string
	Metadata map[string]any
	Body     string
	Format   frontmatter.Format

	rawBody []byte
}

// Has reports whether key is declared with a non-null value.
func (d *Document) Has(key string) bool {
	v, ok := d.Metadata[key]
	return ok && v != nil
}

// String returns a scalar metadata value as a string. The bool is false when
// the key is absent or null.
func (d *Document) String(key string) (string, bool) {
	if !d.Has(key) {
		return "", false
	}
	s, ok := scalarString(d.Metadata[key])
	return s, ok
}

// Int returns a whole-number metadata value. The bool is false when the key is
// absent or null.
func (d *Document) Int(key string) (int, bool) {
	if !d.Has(key) {
		return 0, false
	}
	return wholeNumber(d.Metadata[key])
}

// Loader reads article files relative to a documentation root.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Resolve returns the filesystem path for a path relative to the root.
func (l *Loader) Resolve(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// Load reads and decodes the article at rel.
//
// A missing file yields an error matching ErrNotFound. Malformed front matter
// yields a *DecodeError. Other read failures are classified filesystem errors.
// Nothing is cached.
func (l *Loader) Load(rel string) (*Document, error) {
	path := l.Resolve(rel)

	// #nosec G304 -- rel comes from the outline's article references.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, rel)
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read article").
			WithContext("path", path).
			Build()
	}
	return Decode(path, data)
}

// Decode splits raw article bytes into a Document.
func Decode(path string, data []byte) (*Document, error) {
	fm, body, format, _, err := frontmatter.Split(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	fields, err := frontmatter.Parse(fm, format)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	doc := &Document{
		Path:     path,
		Metadata: fields,
		Body:     strings.TrimSpace(string(body)),
		Format:   format,
		rawBody:  body,
	}
	if err := checkKnownFields(doc); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return doc, nil
}

func checkKnownFields(doc *Document) error {
	for _, key := range []string{KeyID, KeyTitle, KeyModuleID} {
		if doc.Has(key) {
			if _, ok := doc.String(key); !ok {
				return fmt.Errorf("front matter field %q must be a string, integer or boolean, got %T", key, doc.Metadata[key])
			}
		}
	}
	if doc.Has(KeyOrder) {
		if _, ok := doc.Int(KeyOrder); !ok {
			return fmt.Errorf("front matter field %q must be an integer, got %v", KeyOrder, doc.Metadata[KeyOrder])
		}
	}
	return nil
}

// scalarString accepts values whose text survives decoding unchanged. Floats
// do not (1.10 decodes as 1.1), so they are rejected.
func scalarString(v any) (string, bool) {
	switch vv := v.(type) {
	case string:
		return vv, true
	case bool, int, int64, uint64:
		return fmt.Sprint(vv), true
	default:
		return "", false
	}
}

func wholeNumber(v any) (int, bool) {
	switch vv := v.(type) {
	case int:
		return vv, true
	case int64:
		if vv < math.MinInt || vv > math.MaxInt {
			return 0, false
		}
		return int(vv), true
	case uint64:
		if vv > math.MaxInt {
			return 0, false
		}
		return int(vv), true
	case float64:
		if vv != math.Trunc(vv) || math.IsInf(vv, 0) || vv > math.MaxInt || vv < math.MinInt {
			return 0, false
		}
		return int(vv), true
	default:
		return 0, false
	}
}
