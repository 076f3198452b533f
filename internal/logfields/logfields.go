package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySite       = "site"
	KeyPhase      = "phase"
	KeyFile       = "file"
	KeyDocument   = "document"
	KeyLanguage   = "language"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Site(name string) slog.Attr      { return slog.String(KeySite, name) }
func Phase(name string) slog.Attr     { return slog.String(KeyPhase, name) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Document(name string) slog.Attr  { return slog.String(KeyDocument, name) }
func Language(code string) slog.Attr  { return slog.String(KeyLanguage, code) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
