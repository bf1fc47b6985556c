package validate

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		Issues: []Issue{
			{Severity: SeverityError, Scope: "intro", Rule: "article-not-found", Message: "Article file not found: docs/intro.md", File: "docs/intro.md"},
			{Severity: SeverityWarning, Scope: "billing", Rule: "module-icon", Message: "Module billing missing icon"},
		},
		ModuleCount:  2,
		ArticleCount: 3,
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&buf, sampleResult(), "help-center-toc.yaml"))

	out := buf.String()
	require.Contains(t, out, "Validating help center: help-center-toc.yaml")
	require.Contains(t, out, "✗ ERROR [intro] Article file not found: docs/intro.md")
	require.Contains(t, out, "  file: docs/intro.md")
	require.Contains(t, out, "⚠ WARNING [billing] Module billing missing icon")
	require.Contains(t, out, "Modules:  2")
	require.Contains(t, out, "Articles: 3")
	require.Contains(t, out, "1 error (blocks release)")
	require.Contains(t, out, "1 warning (should fix)")
	require.Contains(t, out, "❌ Validation failed with errors")
}

func TestTextFormatter_FinalMessages(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{"passed", &Result{}, "✅ Validation passed successfully"},
		{"warnings", &Result{Issues: []Issue{{Severity: SeverityWarning, Message: "w"}}}, "⚠️  Validation passed with warnings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, (&TextFormatter{}).Format(&buf, tt.result, "toc.yaml"))
			require.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("json").Format(&buf, sampleResult(), "help-center-toc.yaml"))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "failed", out.Status)
	require.Equal(t, 2, out.ModuleCount)
	require.Equal(t, 3, out.ArticleCount)
	require.Equal(t, 1, out.ErrorCount)
	require.Equal(t, 1, out.WarningCount)
	require.Len(t, out.Issues, 2)
	require.Equal(t, "ERROR", out.Issues[0].Severity)
	require.Equal(t, "article-not-found", out.Issues[0].Rule)
	require.Empty(t, out.Issues[1].File)
}

func TestJSONFormatter_EmptyIssuesIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, &Result{}, "toc.yaml"))
	require.Contains(t, buf.String(), `"issues": []`)
	require.Contains(t, buf.String(), `"status": "passed"`)
}
