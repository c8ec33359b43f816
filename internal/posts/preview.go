package posts

import "strings"

// PreviewRule names the rule that produced a post preview.
type PreviewRule int

const (
	PreviewExplicit PreviewRule = iota + 1
	PreviewSeparator
	PreviewPostLength
	PreviewGlobalLength
)

func (r PreviewRule) String() string {
	switch r {
	case PreviewExplicit:
		return "explicit"
	case PreviewSeparator:
		return "separator"
	case PreviewPostLength:
		return "post_length"
	case PreviewGlobalLength:
		return "global_length"
	default:
		return "unknown"
	}
}

// DerivePreview computes the preview and the separator-free body.
//
// Exactly one rule fires, in order: a non-empty explicit preview, the text
// before the first separator, the first postLength characters, or the first
// globalLength characters. Every separator occurrence is removed from the
// returned body whichever rule fired.
func DerivePreview(body, explicit, separator string, postLength, globalLength int) (preview, cleanBody string, rule PreviewRule) {
	cleanBody = body
	hasSeparator := separator != "" && strings.Contains(body, separator)
	if hasSeparator {
		cleanBody = strings.ReplaceAll(body, separator, "")
	}

	switch {
	case explicit != "":
		return explicit, cleanBody, PreviewExplicit
	case hasSeparator:
		before, _, _ := strings.Cut(body, separator)
		return before, cleanBody, PreviewSeparator
	case postLength > 0:
		return truncateRunes(cleanBody, postLength), cleanBody, PreviewPostLength
	default:
		return truncateRunes(cleanBody, globalLength), cleanBody, PreviewGlobalLength
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
