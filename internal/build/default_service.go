package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/model"
	"git.home.luguber.info/inful/blogbuilder/internal/observability"
	"git.home.luguber.info/inful/blogbuilder/internal/posts"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
	"github.com/google/uuid"
	"github.com/inful/mdfp"
)

// RendererFactory creates the renderer used for one build.
type RendererFactory func(cfg *config.Config) site.Renderer

// DefaultRendererFactory returns the html/template engine reading from the
// configured template directory.
func DefaultRendererFactory(cfg *config.Config) site.Renderer {
	return render.New(cfg.Templates.Directory, cfg.Templates.Extension)
}

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	rendererFactory RendererFactory
	writer          site.Writer
	recorder        metrics.Recorder
	idFunc          func() string
}

// NewBuildService creates a new DefaultBuildService with default dependencies.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		rendererFactory: DefaultRendererFactory,
		writer:          site.FileWriter{},
		recorder:        metrics.NoopRecorder{},
		idFunc:          uuid.NewString,
	}
}

// WithRendererFactory replaces the renderer factory.
func (s *DefaultBuildService) WithRendererFactory(f RendererFactory) *DefaultBuildService {
	if f != nil {
		s.rendererFactory = f
	}
	return s
}

// WithWriter replaces the page writer (for testing).
func (s *DefaultBuildService) WithWriter(w site.Writer) *DefaultBuildService {
	if w != nil {
		s.writer = w
	}
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := time.Now()
	result := &BuildResult{
		BuildID:   s.idFunc(),
		StartTime: startTime,
	}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	finish := func(status BuildStatus) {
		result.Status = status
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		s.recorder.ObserveBuildDuration(result.Duration)
		s.recorder.IncBuildOutcome(outcomeLabel(status))
	}

	if req.Config == nil {
		finish(BuildStatusFailed)
		return result, ferrors.ConfigError("config required").Build()
	}
	cfg := req.Config
	result.OutputPath = cfg.Output.Directory

	// Stage 1: scan
	stageStart := time.Now()
	ctx = observability.WithStage(ctx, StageScan)
	observability.InfoContext(ctx, "Scanning posts",
		logfields.Path(cfg.Posts.Directory),
		slog.Any("extensions", cfg.Posts.Extensions))
	paths, err := posts.Scan(cfg.Posts.Directory, cfg.Posts.Extensions)
	s.recorder.ObserveStageDuration(StageScan, time.Since(stageStart))
	if err != nil {
		s.recorder.IncStageResult(StageScan, metrics.ResultFatal)
		finish(BuildStatusFailed)
		return result, fmt.Errorf("%w: %w", ErrScan, err)
	}
	s.recorder.IncStageResult(StageScan, metrics.ResultSuccess)
	observability.InfoContext(ctx, "Posts discovered", logfields.Count(len(paths)))

	if cancelled(ctx) {
		s.recorder.IncStageResult(StageModel, metrics.ResultCanceled)
		finish(BuildStatusCancelled)
		return result, ctx.Err()
	}

	// Stage 2: model
	stageStart = time.Now()
	ctx = observability.WithStage(ctx, StageModel)
	m, err := model.Build(paths, posts.LoadOptions{
		Root:             cfg.Posts.Directory,
		PreviewLength:    cfg.Posts.PreviewLength,
		PreviewSeparator: cfg.Posts.PreviewSeparator,
	}, model.WithRecorder(s.recorder), model.WithLogger(slog.Default().With(logfields.BuildID(result.BuildID))))
	s.recorder.ObserveStageDuration(StageModel, time.Since(stageStart))
	if err != nil {
		s.recorder.IncStageResult(StageModel, metrics.ResultFatal)
		finish(BuildStatusFailed)
		return result, fmt.Errorf("%w: %w", ErrModel, err)
	}
	result.Model = m
	result.Stats = m.Stats()
	modelResult := metrics.ResultSuccess
	if result.Stats.LoadWarnings > 0 || result.Stats.Skipped > 0 {
		modelResult = metrics.ResultWarning
	}
	s.recorder.IncStageResult(StageModel, modelResult)
	observability.InfoContext(ctx, "Model built",
		slog.Int("posts", result.Stats.Posts),
		slog.Int("tags", result.Stats.Tags),
		slog.Int("authors", result.Stats.Authors),
		slog.Int("load_warnings", result.Stats.LoadWarnings),
		slog.Int("skipped", result.Stats.Skipped))

	if req.Options.DiscoverOnly {
		finish(statusFor(result.Stats, nil))
		return result, nil
	}

	result.Fingerprint = Fingerprint(m, cfg.Templates.Directory)
	if fp := req.Options.SkipIfFingerprint; fp != "" && fp == result.Fingerprint {
		observability.InfoContext(ctx, "Build skipped - content unchanged")
		result.SkipReason = "no_changes"
		finish(BuildStatusSkipped)
		return result, nil
	}

	// Stage 3: generate
	stageStart = time.Now()
	ctx = observability.WithStage(ctx, StageGenerate)
	gen := site.NewGenerator(cfg, s.rendererFactory(cfg)).
		WithWriter(s.writer).
		WithRecorder(s.recorder)
	report, err := gen.Generate(ctx, m)
	s.recorder.ObserveStageDuration(StageGenerate, time.Since(stageStart))
	result.Report = report
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.recorder.IncStageResult(StageGenerate, metrics.ResultCanceled)
			finish(BuildStatusCancelled)
			return result, err
		}
		s.recorder.IncStageResult(StageGenerate, metrics.ResultFatal)
		finish(BuildStatusFailed)
		return result, fmt.Errorf("%w: %w", ErrGenerate, err)
	}

	status := statusFor(result.Stats, report)
	if status == BuildStatusWarning {
		s.recorder.IncStageResult(StageGenerate, metrics.ResultWarning)
	} else {
		s.recorder.IncStageResult(StageGenerate, metrics.ResultSuccess)
	}
	finish(status)

	observability.InfoContext(ctx, "Build complete",
		slog.String("status", string(status)),
		logfields.Output(result.OutputPath),
		logfields.Duration(result.Duration))
	return result, nil
}

func statusFor(stats model.Stats, report *site.Report) BuildStatus {
	if stats.LoadWarnings > 0 || stats.Skipped > 0 {
		return BuildStatusWarning
	}
	if report != nil && !report.OK() {
		return BuildStatusWarning
	}
	return BuildStatusSuccess
}

func outcomeLabel(s BuildStatus) metrics.BuildOutcomeLabel {
	switch s {
	case BuildStatusSuccess, BuildStatusSkipped:
		return metrics.BuildOutcomeSuccess
	case BuildStatusWarning:
		return metrics.BuildOutcomeWarning
	case BuildStatusCancelled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}

func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Fingerprint summarises the post fingerprints of m and the contents of the
// template directory. Two builds with the same fingerprint produce the same
// pages.
func Fingerprint(m *model.Model, templateDir string) string {
	var postsPart strings.Builder
	ids := m.PostIDs()
	slices.Sort(ids)
	for _, id := range ids {
		p, _ := m.Post(id)
		fmt.Fprintf(&postsPart, "%s\x00%s\x00%s\n", id, p.Fingerprint, p.Date)
	}

	var tplPart strings.Builder
	_ = filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		data, readErr := os.ReadFile(path) // #nosec G304 -- template directory from config
		if readErr != nil {
			return nil
		}
		fmt.Fprintf(&tplPart, "%s\x00", path)
		tplPart.Write(data)
		return nil
	})

	return mdfp.CalculateFingerprintFromParts(tplPart.String(), postsPart.String())
}
