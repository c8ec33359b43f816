package posts

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	perrors "git.home.luguber.info/inful/blogbuilder/internal/posts/errors"
	"github.com/inful/mdfp"
)

// Defaults applied when LoadOptions leaves a value unset.
const (
	DefaultPreviewLength    = 70
	DefaultPreviewSeparator = "==[END PREVIEW]=="
)

// DateLayout is the Go layout matching the "YYYY MM DD" post date format.
const DateLayout = "2006 01 02"

// LoadOptions controls how a post file is turned into a Post.
type LoadOptions struct {
	Root             string // Posts root; identifiers are relative to it
	PreviewLength    int    // Global preview length in characters
	PreviewSeparator string // Marker separating the preview from the rest of the body
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.PreviewLength <= 0 {
		o.PreviewLength = DefaultPreviewLength
	}
	if o.PreviewSeparator == "" {
		o.PreviewSeparator = DefaultPreviewSeparator
	}
	return o
}

// Load reads and parses the post at path.
//
// A read failure returns a nil post and a load error. A front-matter parse
// failure returns a post carrying only defaults together with a warning-level
// load error; callers keep the post.
func Load(path string, opts LoadOptions) (*Post, error) {
	opts = opts.withDefaults()

	id, err := Identifier(opts.Root, path)
	if err != nil {
		return nil, errors.LoadError("cannot derive post identifier").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	// #nosec G304 -- path comes from Scan over the configured posts directory
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.LoadError("cannot read post").
			WithCause(fmt.Errorf("%w: %w", perrors.ErrPostReadFailed, err)).
			WithContext("path", path).
			Build()
	}

	post := newDefaultPost(id, path, baseTitle(path))

	fields, body, raw, err := frontmatter.Parse(content)
	if err != nil {
		post.Fingerprint = mdfp.CalculateFingerprintFromParts("", string(content))
		return post, errors.LoadError("invalid front-matter, using defaults").
			WithCause(fmt.Errorf("%w: %w", perrors.ErrFrontmatterInvalid, err)).
			WithContext("path", path).
			WithContext("post_id", id).
			Build()
	}

	applyFields(post, fields)

	explicit := post.Preview
	post.Preview, post.Body, _ = DerivePreview(string(body), explicit, opts.PreviewSeparator, post.PreviewLength, opts.PreviewLength)
	post.Fingerprint = mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(raw), "\n"), string(body))

	return post, nil
}

// applyFields overlays recognised front-matter keys on the defaults in post.
func applyFields(post *Post, fields map[string]any) {
	post.Fields = fields

	if v, ok := scalarString(fields[FieldTitle]); ok && v != "" {
		post.Title = v
	}
	if v, ok := scalarString(fields[FieldAuthor]); ok && v != "" {
		post.Author = v
	}
	if v, ok := scalarString(fields[FieldDate]); ok {
		post.Date = v
	}
	if v, ok := scalarString(fields[FieldPreview]); ok {
		post.Preview = v
	}
	if n, ok := intValue(fields[FieldPreviewLength]); ok && n > 0 {
		post.PreviewLength = n
	}
	post.Tags = normalizeTags(fields[FieldTags])
}

// normalizeTags accepts a list or a single scalar. Entries are trimmed,
// empty entries dropped and duplicates removed keeping the first occurrence.
func normalizeTags(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
	case []any:
		for _, item := range t {
			if s, ok := scalarString(item); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = append(raw, t...)
	default:
		if s, ok := scalarString(t); ok {
			raw = append(raw, s)
		}
	}

	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(t), true
	case time.Time:
		return t.Format(DateLayout), true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		return int(t), true // #nosec G115 -- preview lengths are small
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	default:
		return 0, false
	}
}
