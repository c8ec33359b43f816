package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPostID     = "post_id"
	KeyPath       = "path"
	KeyTag        = "tag"
	KeyAuthor     = "author"
	KeyPageType   = "page_type"
	KeyOutput     = "output"
	KeyTemplate   = "template"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func PostID(id string) slog.Attr      { return slog.String(KeyPostID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Author(a string) slog.Attr       { return slog.String(KeyAuthor, a) }
func PageType(t string) slog.Attr     { return slog.String(KeyPageType, t) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Template(p string) slog.Attr     { return slog.String(KeyTemplate, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Duration converts d to a millisecond attribute.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
