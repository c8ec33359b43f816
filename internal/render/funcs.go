package render

import (
	"bytes"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/model"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// FuncMap returns the helpers available to page templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"postURL":     model.URLForPost,
		"postIDURL":   model.URLForPostID,
		"tagURL":      model.URLForTag,
		"authorURL":   model.URLForAuthor,
		"overviewURL": model.URLForOverview,
		"formatDate":  model.FormatPostDate,
		"sortNewest":  model.SortNewestFirst,
		"sortOldest":  model.SortOldestFirst,
		"markdown":    Markdown,
		"plainText":   PlainText,
		"join":        strings.Join,
		"hasTag": func(p *posts.Post, tag string) bool {
			return p != nil && p.HasTag(tag)
		},
		"field": func(p *posts.Post, key string) any {
			if p == nil {
				return nil
			}
			v, _ := p.Field(key)
			return v
		},
	}
}

// Markdown converts markdown source to HTML. Raw HTML in the source is not
// passed through.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	// #nosec G203 -- goldmark output with unsafe HTML disabled
	return template.HTML(buf.String()), nil
}

// blockTags separate words when markup is stripped.
var blockTags = map[string]bool{
	"p": true, "br": true, "li": true, "div": true, "tr": true, "td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true,
}

// PlainText strips markup from an HTML fragment and collapses whitespace.
func PlainText(fragment template.HTML) string {
	z := html.NewTokenizer(strings.NewReader(string(fragment)))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); blockTags[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}
