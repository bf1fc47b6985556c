package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studio27se/ehub/internal/foundation/errors"
)

// Encode renders out as indented JSON without HTML escaping, so Markdown
// bodies keep their literal angle brackets and ampersands.
func Encode(out *Output) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes out to path through a temporary file and an atomic rename,
// so a failed write never leaves a partial artifact behind.
func Write(path string, out *Output) error {
	data, err := Encode(out)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "encode help center").Build()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "ensure output directory").
			WithContext("path", path).
			Build()
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write temp output").
			WithContext("path", tmp).
			Build()
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.WrapError(err, errors.CategoryFileSystem, "atomic rename output").
			WithContext("path", path).
			Build()
	}
	return nil
}
