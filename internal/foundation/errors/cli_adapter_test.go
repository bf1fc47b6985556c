package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitOK},
		{"outline error", OutlineError("missing modules").Build(), ExitFatal},
		{"validation error", NewError(CategoryValidation, "issues found").Build(), ExitErrors},
		{"validation warning", NewError(CategoryValidation, "drift").Warning().Build(), ExitWarnings},
		{"config error", ConfigError("bad config").Build(), ExitConfig},
		{"docs error", DocsError("parse failed").Build(), ExitFileSystem},
		{"filesystem error", FileSystemError("write failed").Build(), ExitFileSystem},
		{"internal error", InternalError("boom").Build(), ExitInternal},
		{"unclassified error", errors.New("unknown error"), ExitInternal},
		{"unknown category", NewError(ErrorCategory("other"), "odd").Build(), ExitInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	wrapped := WrapError(cause, CategoryOutline, "decode outline").Fatal().Build()

	quiet := NewCLIErrorAdapter(false, slog.Default())
	require.Equal(t, "", quiet.FormatError(nil))
	require.Equal(t, "Error: decode outline", quiet.FormatError(wrapped))
	require.Equal(t, "Error: unknown error", quiet.FormatError(errors.New("unknown error")))

	verbose := NewCLIErrorAdapter(true, slog.Default())
	require.Contains(t, verbose.FormatError(wrapped), "mapping values are not allowed")
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out

	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(OutlineError("outline is missing the modules list").
		WithContext("path", "help-center-toc.yaml").
		Build())

	require.Equal(t, ExitFatal, code)
	require.Contains(t, out.String(), "outline is missing the modules list")
	require.Contains(t, logs.String(), "path=help-center-toc.yaml")

	code = -1
	adapter.HandleError(nil)
	require.Equal(t, -1, code)

	out.Reset()
	adapter.HandleError(NewError(CategoryValidation, "validation failed").Build())
	require.Equal(t, ExitErrors, code)
	require.Empty(t, out.String())
}
