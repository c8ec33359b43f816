package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/model"
	"git.home.luguber.info/inful/blogbuilder/internal/observability"
)

// Generator renders and writes every page of a model.
type Generator struct {
	cfg      *config.Config
	renderer Renderer
	writer   Writer
	recorder metrics.Recorder
}

// NewGenerator creates a generator writing below cfg.Output.Directory.
func NewGenerator(cfg *config.Config, r Renderer) *Generator {
	return &Generator{
		cfg:      cfg,
		renderer: r,
		writer:   FileWriter{},
		recorder: metrics.NoopRecorder{},
	}
}

// WithWriter replaces the file writer.
func (g *Generator) WithWriter(w Writer) *Generator {
	if w != nil {
		g.writer = w
	}
	return g
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// Pages lists the generation tasks for m: posts newest first, tags and
// authors in lexical order, then the overview.
func (g *Generator) Pages(m *model.Model) []Page {
	out := g.cfg.Output.Directory
	tplDir, ext := g.cfg.Templates.Directory, g.cfg.Templates.Extension

	pages := make([]Page, 0, m.Len()+len(m.Tags())+len(m.Authors())+1)
	for _, p := range m.Posts() {
		pages = append(pages, Page{
			Type:     PostPage,
			Context:  PageContext{Type: PostPage, Post: p},
			Template: TemplatePath(tplDir, ext, PostPage),
			Output:   OutputPath(out, PostPage, p.ID),
		})
	}
	for _, tag := range m.Tags() {
		pages = append(pages, Page{
			Type:     TagPage,
			Context:  PageContext{Type: TagPage, Tag: tag, Posts: m.PostsByTag(tag)},
			Template: TemplatePath(tplDir, ext, TagPage),
			Output:   OutputPath(out, TagPage, tag),
		})
	}
	for _, author := range m.Authors() {
		pages = append(pages, Page{
			Type:     AuthorPage,
			Context:  PageContext{Type: AuthorPage, Author: author, Posts: m.PostsByAuthor(author)},
			Template: TemplatePath(tplDir, ext, AuthorPage),
			Output:   OutputPath(out, AuthorPage, author),
		})
	}
	pages = append(pages, Page{
		Type:     OverviewPage,
		Context:  PageContext{Type: OverviewPage, Posts: m.Posts()},
		Template: TemplatePath(tplDir, ext, OverviewPage),
		Output:   OutputPath(out, OverviewPage, model.OverviewName),
	})
	return pages
}

// Generate renders and writes every page.
//
// Every task is attempted even when some fail. A render failure substitutes
// the error message as page content. Write failures are collected and
// returned together as a single write error once all workers have finished.
// Cancellation stops workers from starting new pages.
func (g *Generator) Generate(ctx context.Context, m *model.Model) (*Report, error) {
	start := time.Now()

	if g.cfg.Output.Clean {
		if err := os.RemoveAll(g.cfg.Output.Directory); err != nil {
			return nil, ferrors.FileSystemError("cannot clean output directory").
				WithCause(err).
				WithContext("output", g.cfg.Output.Directory).
				Build()
		}
		observability.DebugContext(ctx, "Cleaned output directory", logfields.Output(g.cfg.Output.Directory))
	}

	pages := g.Pages(m)
	report := newReport(len(pages))

	concurrency := g.cfg.Build.Concurrency
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var writeErrs []error

	for _, page := range pages {
		wg.Add(1)
		go func(p Page) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				mu.Lock()
				report.Skipped++
				mu.Unlock()
				return
			}

			content, renderFailed := g.render(ctx, m, p)
			err := g.writer.WriteFile(p.Output, []byte(content))

			mu.Lock()
			defer mu.Unlock()
			if renderFailed {
				report.RenderFailures++
				g.recorder.IncPageResult(string(p.Type), metrics.PageRenderFailed)
			}
			if err != nil {
				report.WriteFailures++
				writeErrs = append(writeErrs, err)
				g.recorder.IncPageResult(string(p.Type), metrics.PageWriteFailed)
				observability.WarnContext(ctx, "Failed to write page",
					logfields.PageType(string(p.Type)), logfields.Output(p.Output), logfields.Error(err))
				return
			}
			report.Written++
			report.ByType[p.Type]++
			g.recorder.IncPageResult(string(p.Type), metrics.PageWritten)
		}(page)
	}
	wg.Wait()
	report.Duration = time.Since(start)

	observability.InfoContext(ctx, "Pages generated",
		logfields.Count(report.Written),
		slog.Int("planned", report.Pages),
		slog.Int("render_failures", report.RenderFailures),
		slog.Int("write_failures", report.WriteFailures),
		logfields.Duration(report.Duration))

	if len(writeErrs) > 0 {
		return report, ferrors.WriteError(fmt.Sprintf("%d of %d pages could not be written", len(writeErrs), len(pages))).
			WithCause(errors.Join(writeErrs...)).
			WithContext("failed", len(writeErrs)).
			Build()
	}
	if err := ctx.Err(); err != nil {
		return report, ferrors.RuntimeError("page generation canceled").
			WithCause(err).
			WithContext("skipped", report.Skipped).
			Build()
	}
	return report, nil
}

// render returns the page content, or the error message when rendering fails
// or the renderer panics.
func (g *Generator) render(ctx context.Context, m *model.Model, p Page) (content string, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			observability.WarnContext(ctx, "Renderer panicked, writing error message instead",
				logfields.PageType(string(p.Type)),
				logfields.Template(p.Template),
				logfields.Output(p.Output),
				slog.Any("panic", r))
			content, failed = fmt.Sprintf("render panic: %v", r), true
		}
	}()

	content, err := g.renderer.Render(p.Template, PageData{Model: m, Page: p.Context}, p.Type)
	if err != nil {
		observability.WarnContext(ctx, "Failed to render page, writing error message instead",
			logfields.PageType(string(p.Type)),
			logfields.Template(p.Template),
			logfields.Output(p.Output),
			logfields.Error(err))
		return err.Error(), true
	}
	return content, false
}
