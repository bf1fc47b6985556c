// Package outline models the help center table of contents: an ordered list
// of modules, each owning an ordered list of article references.
package outline

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/studio27se/ehub/internal/foundation/errors"
)

const (
	// DefaultVersion is used when the outline does not declare a version.
	DefaultVersion = "1.0.0"
	// DefaultIcon is used for modules that do not declare an icon.
	DefaultIcon = "file"
)

// ErrMissingModules is returned when the outline has no modules list. Callers
// match it with errors.Is.
var ErrMissingModules = errors.OutlineError("outline is missing the modules list").Build()

// Outline is the decoded table of contents.
type Outline struct {
	Version string
	Modules []Module
}

// Module is a named grouping of articles.
type Module struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Order       int
	Articles    []ArticleRef

	// HasArticles is false when the articles key is absent or not a sequence.
	HasArticles bool

	// Invalid names fields whose value had the wrong type, in decode order.
	Invalid []string
}

// ArticleRef points at an article file and carries its outline defaults.
type ArticleRef struct {
	ID    string
	Title string
	File  string
	Order *int

	// Invalid names fields whose value had the wrong type, in decode order.
	Invalid []string
}

// VersionOrDefault returns the declared version or DefaultVersion.
func (o *Outline) VersionOrDefault() string {
	if o.Version == "" {
		return DefaultVersion
	}
	return o.Version
}

// ArticleCount returns the number of article references across all modules.
func (o *Outline) ArticleCount() int {
	n := 0
	for _, m := range o.Modules {
		n += len(m.Articles)
	}
	return n
}

// IconOrDefault returns the declared icon or DefaultIcon.
func (m Module) IconOrDefault() string {
	if m.Icon == "" {
		return DefaultIcon
	}
	return m.Icon
}

// OrderOrZero returns the declared order, or 0 when absent.
func (r ArticleRef) OrderOrZero() int {
	if r.Order == nil {
		return 0
	}
	return *r.Order
}

type rawOutline struct {
	Version yaml.Node `yaml:"version"`
	Modules yaml.Node `yaml:"modules"`
}

// Parse decodes an outline from its YAML form.
//
// A missing or null modules key yields ErrMissingModules; a modules value that
// is not a sequence, or YAML that cannot be decoded, yields a fatal outline
// error. Neither is a validation finding. Individual entries never fail the
// parse: a module or article entry that is not a mapping decodes with empty
// fields, and a field holding the wrong kind of value is left at its zero
// value and named in Invalid.
func Parse(data []byte) (*Outline, error) {
	var raw rawOutline
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapError(err, errors.CategoryOutline, "decode outline").Fatal().Build()
	}

	modules := deref(&raw.Modules)
	if isAbsent(modules) {
		return nil, ErrMissingModules
	}
	if modules.Kind != yaml.SequenceNode {
		return nil, errors.OutlineError("outline modules must be a sequence").
			WithContext("line", modules.Line).
			Build()
	}

	o := &Outline{Modules: make([]Module, 0, len(modules.Content))}
	o.Version, _ = scalarValue(deref(&raw.Version))
	for _, n := range modules.Content {
		o.Modules = append(o.Modules, parseModule(n))
	}
	return o, nil
}

func parseModule(n *yaml.Node) Module {
	var m Module
	f := fieldsOf(n)
	m.ID = f.text("id", &m.Invalid)
	m.Title = f.text("title", &m.Invalid)
	m.Description = f.text("description", &m.Invalid)
	m.Icon = f.text("icon", &m.Invalid)
	if order, ok := f.integer("order", &m.Invalid); ok {
		m.Order = order
	}

	if articles, ok := f["articles"]; ok && articles.Kind == yaml.SequenceNode {
		m.HasArticles = true
		m.Articles = make([]ArticleRef, 0, len(articles.Content))
		for _, an := range articles.Content {
			m.Articles = append(m.Articles, parseArticle(an))
		}
	}
	return m
}

func parseArticle(n *yaml.Node) ArticleRef {
	var r ArticleRef
	f := fieldsOf(n)
	r.ID = f.text("id", &r.Invalid)
	r.Title = f.text("title", &r.Invalid)
	r.File = f.text("file", &r.Invalid)
	if order, ok := f.integer("order", &r.Invalid); ok {
		r.Order = &order
	}
	return r
}

// fields maps the keys of a YAML mapping to their (alias-resolved) values.
type fields map[string]*yaml.Node

// fieldsOf returns nil for anything but a mapping.
func fieldsOf(n *yaml.Node) fields {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	f := make(fields, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		f[n.Content[i].Value] = deref(n.Content[i+1])
	}
	return f
}

// text returns the scalar text at key. A non-scalar value yields "" and is
// recorded in invalid.
func (f fields) text(key string, invalid *[]string) string {
	n, ok := f[key]
	if !ok {
		return ""
	}
	s, valid := scalarValue(n)
	if !valid {
		*invalid = append(*invalid, key)
	}
	return s
}

// integer returns the integer at key; ok is false when it is absent, null or
// invalid. Invalid values are recorded in invalid.
func (f fields) integer(key string, invalid *[]string) (int, bool) {
	n, ok := f[key]
	if !ok || isAbsent(n) {
		return 0, false
	}
	var v int
	if n.Kind != yaml.ScalarNode || n.Decode(&v) != nil {
		*invalid = append(*invalid, key)
		return 0, false
	}
	return v, true
}

func scalarValue(n *yaml.Node) (string, bool) {
	switch {
	case isAbsent(n):
		return "", true
	case n.Kind == yaml.ScalarNode:
		return n.Value, true
	default:
		return "", false
	}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// Load reads and decodes the outline at path. Any failure is fatal.
func Load(path string) (*Outline, error) {
	// #nosec G304 -- path is the configured outline location.
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "read outline"
		if os.IsNotExist(err) {
			msg = "outline file not found"
		}
		return nil, errors.WrapError(err, errors.CategoryOutline, msg).
			Fatal().
			WithContext("path", path).
			Build()
	}
	return Parse(data)
}

func isAbsent(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
