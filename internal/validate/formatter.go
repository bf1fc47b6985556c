package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter writes a validation result.
type Formatter interface {
	Format(w io.Writer, result *Result, tocPath string) error
}

// NewFormatter creates the formatter for format ("text" or "json").
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs issues in outline order followed by a summary.
func (f *TextFormatter) Format(w io.Writer, result *Result, tocPath string) error {
	p := &printer{w: w}
	rule := strings.Repeat("━", 50)

	p.linef("Validating help center: %s", tocPath)
	p.linef("%s", rule)
	for _, issue := range result.Issues {
		icon := "⚠"
		if issue.Severity == SeverityError {
			icon = "✗"
		}
		scope := issue.Scope
		if scope == "" {
			scope = "-"
		}
		p.linef("%s %s [%s] %s", icon, issue.Severity, scope, issue.Message)
		if issue.File != "" {
			p.linef("  file: %s", issue.File)
		}
	}
	if len(result.Issues) > 0 {
		p.linef("%s", rule)
	}

	p.linef("Validation Summary")
	p.linef("  Modules:  %d", result.ModuleCount)
	p.linef("  Articles: %d", result.ArticleCount)
	if n := result.ErrorCount(); n > 0 {
		p.linef("  %d error%s (blocks release)", n, pluralize(n))
	}
	if n := result.WarningCount(); n > 0 {
		p.linef("  %d warning%s (should fix)", n, pluralize(n))
	}
	p.linef("")

	switch result.Status() {
	case StatusFailed:
		p.linef("❌ Validation failed with errors")
	case StatusPassedWithWarnings:
		p.linef("⚠️  Validation passed with warnings")
	default:
		p.linef("✅ Validation passed successfully")
	}
	return p.err
}

// printer remembers the first write error so callers check it once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Path         string      `json:"path"`
	Status       string      `json:"status"`
	ModuleCount  int         `json:"module_count"`
	ArticleCount int         `json:"article_count"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Severity string `json:"severity"`
	Scope    string `json:"scope,omitempty"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, tocPath string) error {
	output := JSONOutput{
		Path:         tocPath,
		Status:       result.Status().String(),
		ModuleCount:  result.ModuleCount,
		ArticleCount: result.ArticleCount,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			Severity: issue.Severity.String(),
			Scope:    issue.Scope,
			Rule:     issue.Rule,
			Message:  issue.Message,
			File:     issue.File,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
