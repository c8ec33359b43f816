package site

import (
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/model"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

// PageType identifies the kind of page being rendered.
type PageType string

const (
	PostPage     PageType = "postPage"
	TagPage      PageType = "tagPage"
	AuthorPage   PageType = "authorPage"
	OverviewPage PageType = "overviewPage"
)

// TemplateName returns the template base name for the page type.
func (t PageType) TemplateName() string {
	switch t {
	case PostPage:
		return "post"
	case TagPage:
		return "tag"
	case AuthorPage:
		return "author"
	case OverviewPage:
		return "overview"
	default:
		return ""
	}
}

// OutputDir returns the output sub-directory for the page type.
func (t PageType) OutputDir() string {
	switch t {
	case PostPage:
		return "posts"
	case TagPage:
		return "tags"
	case AuthorPage:
		return "authors"
	case OverviewPage:
		return "main"
	default:
		return ""
	}
}

// PageTypes lists every page type in generation order.
func PageTypes() []PageType {
	return []PageType{PostPage, TagPage, AuthorPage, OverviewPage}
}

// PageContext describes the page being rendered. It is passed beside the
// model and never stored in it.
type PageContext struct {
	Type   PageType
	Post   *posts.Post   // Set for post pages
	Tag    string        // Set for tag pages
	Author string        // Set for author pages
	Posts  []*posts.Post // Posts listed on the page, newest first
}

// PageData is the value handed to a Renderer.
type PageData struct {
	Model *model.Model
	Page  PageContext
}

// Page is one generation task.
type Page struct {
	Type     PageType
	Context  PageContext
	Template string // Template file path
	Output   string // Output file path
}

// OutputPath returns the path of a page file below outDir.
func OutputPath(outDir string, t PageType, name string) string {
	return filepath.Join(outDir, t.OutputDir(), model.PageName(name)+model.PageExt)
}

// TemplatePath returns the template file for t.
func TemplatePath(templateDir, ext string, t PageType) string {
	return filepath.Join(templateDir, t.TemplateName()+ext)
}
