package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the front matter syntax of a document.
type Format string

const (
	// FormatNone means the document has no front matter block.
	FormatNone Format = ""
	// FormatYAML is a `---` delimited YAML block.
	FormatYAML Format = "yaml"
	// FormatTOML is a `+++` delimited TOML block.
	FormatTOML Format = "toml"
)

func (f Format) delimiter() string {
	if f == FormatTOML {
		return "+++"
	}
	return "---"
}

// Style captures formatting details needed for stable rewriting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Split separates front matter from the Markdown body.
//
// YAML (`---`) and TOML (`+++`) blocks are recognised. If the document does not
// start with a delimiter, format is FormatNone and body is the full input. A
// closing delimiter may be the last line of the file.
func Split(content []byte) (frontmatter []byte, body []byte, format Format, style Style, err error) {
	style = detectStyle(content)
	nl := style.Newline

	for _, candidate := range []Format{FormatYAML, FormatTOML} {
		delim := candidate.delimiter()
		open := []byte(delim + nl)
		if !bytes.HasPrefix(content, open) {
			continue
		}

		start := len(open)
		rest := content[start:]
		if bytes.HasPrefix(rest, open) {
			return []byte{}, rest[len(open):], candidate, style, nil
		}
		if bytes.Equal(rest, []byte(delim)) {
			return []byte{}, []byte{}, candidate, style, nil
		}

		closeSeq := []byte(nl + delim + nl)
		if idx := bytes.Index(rest, closeSeq); idx >= 0 {
			end := start + idx + len(nl)
			return content[start:end], content[start+idx+len(closeSeq):], candidate, style, nil
		}
		if bytes.HasSuffix(rest, []byte(nl+delim)) {
			end := len(content) - len(delim)
			return content[start:end], []byte{}, candidate, style, nil
		}
		return nil, nil, FormatNone, style, fmt.Errorf("%w (%s)", ErrMissingClosingDelimiter, delim)
	}

	return nil, content, FormatNone, style, nil
}

// Join reassembles a document from raw front matter and body.
//
// If format is FormatNone, Join returns body as-is.
func Join(frontmatter []byte, body []byte, format Format, style Style) []byte {
	if format == FormatNone {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	delim := []byte(format.delimiter() + nl)

	out := make([]byte, 0, 2*len(delim)+len(frontmatter)+len(body))
	out = append(out, delim...)
	out = append(out, frontmatter...)
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

// Parse decodes a raw front matter block (without delimiters) in the given format.
func Parse(frontmatter []byte, format Format) (map[string]any, error) {
	switch format {
	case FormatNone:
		return map[string]any{}, nil
	case FormatYAML:
		return ParseYAML(frontmatter)
	case FormatTOML:
		return ParseTOML(frontmatter)
	default:
		return nil, fmt.Errorf("unsupported front matter format %q", format)
	}
}

// ParseYAML parses raw YAML front matter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// ParseTOML parses raw TOML front matter (without +++ delimiters) into a map.
func ParseTOML(frontmatter []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return fields, nil
	}
	if err := toml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ErrMissingClosingDelimiter indicates the document started with a front
// matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			break
		}
	}

	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
