package model

import (
	"fmt"
	"log/slog"
	"strconv"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
	perrors "git.home.luguber.info/inful/blogbuilder/internal/posts/errors"
)

// DateEntry pairs a post with its raw date string.
type DateEntry struct {
	Post *posts.Post
	Date string
}

// Model is the in-memory blog model.
type Model struct {
	posts   map[string]*posts.Post
	tags    map[string][]string
	authors map[string][]string
	byDate  []DateEntry

	loadWarnings int
	skipped      int
}

// Stats summarises a built model.
type Stats struct {
	Posts        int
	Tags         int
	Authors      int
	Undated      int
	LoadWarnings int
	Skipped      int
}

type buildOptions struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures Build.
type Option func(*buildOptions)

// WithLogger sets the logger used for per-post warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *buildOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *buildOptions) {
		if r != nil {
			o.recorder = r
		}
	}
}

// Build loads every path and indexes the resulting posts.
//
// Paths are processed in the given order, which decides identifier suffixes
// when two files map to the same base identifier. Unreadable files are logged
// and skipped. Files with invalid front-matter are kept with default metadata.
// Listing the same path twice is a validation error.
func Build(paths []string, opts posts.LoadOptions, options ...Option) (*Model, error) {
	bo := buildOptions{logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range options {
		opt(&bo)
	}

	m := &Model{
		posts:   make(map[string]*posts.Post, len(paths)),
		tags:    make(map[string][]string),
		authors: make(map[string][]string),
	}

	seenPaths := make(map[string]struct{}, len(paths))
	order := make([]*posts.Post, 0, len(paths))

	for _, path := range paths {
		if _, dup := seenPaths[path]; dup {
			return nil, errors.ValidationError("post path listed more than once").
				WithCause(fmt.Errorf("%w: %s", perrors.ErrIdentifierCollision, path)).
				WithContext("path", path).
				Build()
		}
		seenPaths[path] = struct{}{}

		post, err := posts.Load(path, opts)
		if post == nil {
			m.skipped++
			bo.recorder.IncPostLoadIssue(metrics.LoadIssueRead)
			bo.logger.Warn("Skipping unreadable post", logfields.Path(path), logfields.Error(err))
			continue
		}
		if err != nil {
			m.loadWarnings++
			bo.recorder.IncPostLoadIssue(metrics.LoadIssueParse)
			bo.logger.Warn("Post front-matter invalid, using defaults",
				logfields.Path(path), logfields.PostID(post.ID), logfields.Error(err))
		}

		if _, taken := m.posts[post.ID]; taken {
			base := post.ID
			post.ID = uniqueID(base, m.posts)
			bo.logger.Warn("Post identifier already in use, renamed",
				logfields.Path(path),
				logfields.PostID(post.ID),
				slog.String("base_id", base),
				logfields.Error(perrors.ErrIdentifierCollision))
		}

		m.posts[post.ID] = post
		order = append(order, post)
	}

	m.byDate = make([]DateEntry, len(order))
	for i, p := range order {
		m.byDate[i] = DateEntry{Post: p, Date: p.Date}
	}
	SortEntriesNewestFirst(m.byDate)

	for _, entry := range m.byDate {
		p := entry.Post
		for _, tag := range p.Tags {
			m.tags[tag] = append(m.tags[tag], p.ID)
		}
		m.authors[p.Author] = append(m.authors[p.Author], p.ID)
	}

	bo.recorder.AddPostsLoaded(len(m.posts))
	return m, nil
}

func uniqueID(base string, taken map[string]*posts.Post) string {
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// Stats returns summary counts for the model.
func (m *Model) Stats() Stats {
	undated := 0
	for _, e := range m.byDate {
		if _, ok := ParseDate(e.Date); !ok {
			undated++
		}
	}
	return Stats{
		Posts:        len(m.posts),
		Tags:         len(m.tags),
		Authors:      len(m.authors),
		Undated:      undated,
		LoadWarnings: m.loadWarnings,
		Skipped:      m.skipped,
	}
}
