// Package posts discovers post files on disk and loads them into Post values.
package posts

// Front-matter keys with built-in meaning. Every other key is kept in Post.Fields.
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldDate          = "date"
	FieldTags          = "tags"
	FieldPreview       = "preview"
	FieldPreviewLength = "preview-length"
)

// DefaultAuthor is used when a post does not name an author.
const DefaultAuthor = "Unknown"

// Post is one loaded blog post. It is created once by Load and is not
// modified after the model has been built.
type Post struct {
	ID            string         // Unique identifier derived from the relative path
	SourcePath    string         // Path of the source file as scanned
	Title         string         // Front-matter title or the file base name
	Author        string         // Front-matter author or DefaultAuthor
	Date          string         // Raw date string, expected as "YYYY MM DD"; may be empty or invalid
	Tags          []string       // Ordered, de-duplicated tags
	Preview       string         // Explicit or derived preview text
	PreviewLength int            // Per-post preview length; 0 means the global length applies
	Body          string         // Markup source with the preview separator removed
	Fields        map[string]any // All front-matter fields as parsed
	Fingerprint   string         // Content fingerprint of front-matter and body
}

// HasTag reports whether the post carries tag.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Field returns a raw front-matter value.
func (p *Post) Field(key string) (any, bool) {
	if p.Fields == nil {
		return nil, false
	}
	v, ok := p.Fields[key]
	return v, ok
}

func newDefaultPost(id, path, title string) *Post {
	return &Post{
		ID:         id,
		SourcePath: path,
		Title:      title,
		Author:     DefaultAuthor,
		Tags:       []string{},
		Fields:     map[string]any{},
	}
}
