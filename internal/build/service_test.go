package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (w *memWriter) WriteFile(path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files == nil {
		w.files = map[string][]byte{}
	}
	w.files[path] = data
	return nil
}

type outcomeRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	outcomes []metrics.BuildOutcomeLabel
	stages   map[string]metrics.ResultLabel
}

func (r *outcomeRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *outcomeRecorder) IncStageResult(stage string, res metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stages == nil {
		r.stages = map[string]metrics.ResultLabel{}
	}
	r.stages[stage] = res
}

func setupBlog(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Posts.Directory = filepath.Join(root, "posts")
	cfg.Templates.Directory = filepath.Join(root, "templates")
	cfg.Output.Directory = filepath.Join(root, "out")

	require.NoError(t, os.MkdirAll(cfg.Posts.Directory, 0o750))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.Posts.Directory, name), []byte(content), 0o600))
	}
	_, err := render.WriteDefaults(cfg.Templates.Directory, cfg.Templates.Extension, false)
	require.NoError(t, err)
	return cfg
}

var twoPosts = map[string]string{
	"2023 01 01-a.md": "---\nauthor: Alice\ndate: 2023 01 01\ntags: [x, y]\n---\nPost A\n",
	"2023 06 01-b.md": "---\nauthor: Bob\ndate: 2023 06 01\ntags: [y]\n---\nPost B\n",
}

func TestBuildStatus_IsSuccess(t *testing.T) {
	tests := []struct {
		status   BuildStatus
		expected bool
	}{
		{BuildStatusSuccess, true},
		{BuildStatusWarning, true},
		{BuildStatusSkipped, true},
		{BuildStatusFailed, false},
		{BuildStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsSuccess())
			assert.True(t, tt.status.IsTerminal())
		})
	}
	assert.False(t, BuildStatus("running").IsTerminal())
}

func TestRun_NilConfig(t *testing.T) {
	rec := &outcomeRecorder{}
	result, err := NewBuildService().WithRecorder(rec).Run(context.Background(), BuildRequest{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.Equal(t, BuildStatusFailed, result.Status)
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeFailed}, rec.outcomes)
}

func TestRun_WritesSiteWithDefaultTemplates(t *testing.T) {
	cfg := setupBlog(t, twoPosts)
	rec := &outcomeRecorder{}

	result, err := NewBuildService().WithRecorder(rec).Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, BuildStatusSuccess, result.Status)
	_, err = uuid.Parse(result.BuildID)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Stats.Posts)
	require.NotNil(t, result.Report)
	assert.Equal(t, 7, result.Report.Written)
	assert.NotEmpty(t, result.Fingerprint)

	for _, rel := range []string{
		"posts/2023 01 01-a.html",
		"posts/2023 06 01-b.html",
		"tags/x.html",
		"tags/y.html",
		"authors/Alice.html",
		"authors/Bob.html",
		"main/overview.html",
	} {
		assert.FileExists(t, filepath.Join(cfg.Output.Directory, filepath.FromSlash(rel)))
	}

	assert.Equal(t, metrics.ResultSuccess, rec.stages[StageScan])
	assert.Equal(t, metrics.ResultSuccess, rec.stages[StageGenerate])
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeSuccess}, rec.outcomes)
}

func TestRun_InvalidFrontmatterIsWarning(t *testing.T) {
	cfg := setupBlog(t, map[string]string{"bad.md": "---\ntags: [oops\n---\n"})

	result, err := NewBuildService().WithWriter(&memWriter{}).Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusWarning, result.Status)
	assert.Equal(t, 1, result.Stats.LoadWarnings)
}

func TestRun_ScanFailure(t *testing.T) {
	cfg := setupBlog(t, nil)
	cfg.Posts.Directory = filepath.Join(t.TempDir(), "missing")

	result, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScan)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryScan))
	assert.Equal(t, BuildStatusFailed, result.Status)
	assert.Nil(t, result.Model)
}

func TestRun_DiscoverOnlyWritesNothing(t *testing.T) {
	cfg := setupBlog(t, twoPosts)
	w := &memWriter{}

	result, err := NewBuildService().WithWriter(w).Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{DiscoverOnly: true},
	})
	require.NoError(t, err)
	assert.Nil(t, result.Report)
	require.NotNil(t, result.Model)
	assert.Equal(t, []string{"x", "y"}, result.Model.Tags())
	assert.Empty(t, w.files)
}

func TestRun_SkipsWhenFingerprintUnchanged(t *testing.T) {
	cfg := setupBlog(t, twoPosts)
	svc := NewBuildService().WithWriter(&memWriter{})

	first, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)

	second, err := svc.Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{SkipIfFingerprint: first.Fingerprint},
	})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusSkipped, second.Status)
	assert.Equal(t, "no_changes", second.SkipReason)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Posts.Directory, "new.md"), []byte("fresh"), 0o600))
	third, err := svc.Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{SkipIfFingerprint: first.Fingerprint},
	})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusSuccess, third.Status)
	assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
}

func TestRun_TemplateChangeChangesFingerprint(t *testing.T) {
	cfg := setupBlog(t, twoPosts)
	svc := NewBuildService().WithWriter(&memWriter{})

	first, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)

	tpl := filepath.Join(cfg.Templates.Directory, "post.html")
	require.NoError(t, os.WriteFile(tpl, []byte("{{.Page.Post.Title}}"), 0o600))

	second, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)
}

func TestRun_RenderFailureIsWarning(t *testing.T) {
	cfg := setupBlog(t, twoPosts)
	failing := func(*config.Config) site.Renderer {
		return site.RenderFunc(func(string, site.PageData, site.PageType) (string, error) {
			return "", errors.New("boom")
		})
	}

	result, err := NewBuildService().
		WithWriter(&memWriter{}).
		WithRendererFactory(failing).
		Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusWarning, result.Status)
	assert.Equal(t, 7, result.Report.RenderFailures)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := setupBlog(t, twoPosts)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewBuildService().WithWriter(&memWriter{}).Run(ctx, BuildRequest{Config: cfg})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, BuildStatusCancelled, result.Status)
	assert.Less(t, result.Duration, time.Minute)
}
