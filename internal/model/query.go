package model

import (
	"maps"
	"slices"

	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

// Post returns the post with the given identifier.
func (m *Model) Post(id string) (*posts.Post, bool) {
	p, ok := m.posts[id]
	return p, ok
}

// Posts returns every post newest first.
func (m *Model) Posts() []*posts.Post {
	out := make([]*posts.Post, len(m.byDate))
	for i, e := range m.byDate {
		out[i] = e.Post
	}
	return out
}

// PostIDs returns every identifier newest first.
func (m *Model) PostIDs() []string {
	out := make([]string, len(m.byDate))
	for i, e := range m.byDate {
		out[i] = e.Post.ID
	}
	return out
}

// PostsByTag returns the posts carrying tag, newest first, or nil.
func (m *Model) PostsByTag(tag string) []*posts.Post {
	return m.resolve(m.tags[tag])
}

// PostsByAuthor returns the posts written by author, newest first, or nil.
func (m *Model) PostsByAuthor(author string) []*posts.Post {
	return m.resolve(m.authors[author])
}

// TagIDs returns the identifiers in the tag bucket.
func (m *Model) TagIDs(tag string) []string {
	return slices.Clone(m.tags[tag])
}

// AuthorIDs returns the identifiers in the author bucket.
func (m *Model) AuthorIDs(author string) []string {
	return slices.Clone(m.authors[author])
}

// Tags returns every tag in lexical order.
func (m *Model) Tags() []string {
	return slices.Sorted(maps.Keys(m.tags))
}

// Authors returns every author in lexical order.
func (m *Model) Authors() []string {
	return slices.Sorted(maps.Keys(m.authors))
}

// ByDate returns a copy of the date sequence.
func (m *Model) ByDate() []DateEntry {
	return slices.Clone(m.byDate)
}

// Len reports the number of posts.
func (m *Model) Len() int {
	return len(m.posts)
}

func (m *Model) resolve(ids []string) []*posts.Post {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*posts.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
