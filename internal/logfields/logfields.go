package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyModuleID   = "module_id"
	KeyArticleID  = "article_id"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyModules    = "modules"
	KeyArticles   = "articles"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ModuleID(id string) slog.Attr    { return slog.String(KeyModuleID, id) }
func ArticleID(id string) slog.Attr   { return slog.String(KeyArticleID, id) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Modules(n int) slog.Attr         { return slog.Int(KeyModules, n) }
func Articles(n int) slog.Attr        { return slog.Int(KeyArticles, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
