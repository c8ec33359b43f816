package model

import (
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

// Relative link bases. Every generated page lives one directory below the
// output root, so links climb one level first.
const (
	PostsBase    = "../posts"
	TagsBase     = "../tags"
	AuthorsBase  = "../authors"
	OverviewBase = "../main"
	OverviewName = "overview"
	PageExt      = ".html"
)

var pageNameEscaper = strings.NewReplacer("%", "%25", "/", "%2F", "\\", "%5C")

// PageName maps a post identifier, tag or author to a file-system safe page
// name. "%" and path separators are percent-encoded and the names "", "."
// and ".." get fixed encoded forms, so distinct inputs never share a page.
// The same name is used for output files and links.
func PageName(name string) string {
	switch name {
	case "":
		return "%00"
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return pageNameEscaper.Replace(name)
}

// SanitizeURL percent-encodes every segment of a slash separated path.
// Spaces, non-ASCII characters and reserved characters such as "?", "#" and
// "%" are escaped. Slashes are kept as segment separators.
func SanitizeURL(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		if s == "." || s == ".." {
			continue
		}
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// FormatURL joins base and file, appends ext and encodes the result.
func FormatURL(base, file, ext string) string {
	return SanitizeURL(path.Join(base, PageName(file)+ext))
}

// URLForPostID returns the link to the page of the post with identifier id.
func URLForPostID(id string) string {
	return FormatURL(PostsBase, id, PageExt)
}

// URLForPost returns the link to the page of p.
func URLForPost(p *posts.Post) string {
	if p == nil {
		return ""
	}
	return URLForPostID(p.ID)
}

// URLForTag returns the link to the page listing posts with tag.
func URLForTag(tag string) string {
	return FormatURL(TagsBase, tag, PageExt)
}

// URLForAuthor returns the link to the page listing posts by author.
func URLForAuthor(author string) string {
	return FormatURL(AuthorsBase, author, PageExt)
}

// URLForOverview returns the link to the overview page.
func URLForOverview() string {
	return FormatURL(OverviewBase, OverviewName, PageExt)
}
