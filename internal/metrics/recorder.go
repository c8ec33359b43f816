package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of a build run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeWarning  BuildOutcomeLabel = "warning"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// PageResultLabel is the outcome of producing a single output page.
type PageResultLabel string

const (
	PageWritten      PageResultLabel = "written"
	PageRenderFailed PageResultLabel = "render_failed"
	PageWriteFailed  PageResultLabel = "write_failed"
)

// LoadIssueLabel classifies a per-post load problem.
type LoadIssueLabel string

const (
	LoadIssueRead  LoadIssueLabel = "read"
	LoadIssueParse LoadIssueLabel = "parse"
)

// Recorder defines observability hooks for builds, posts and pages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	AddPostsLoaded(n int)
	IncPostLoadIssue(issue LoadIssueLabel)
	IncPageResult(pageType string, result PageResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) AddPostsLoaded(int)                         {}
func (NoopRecorder) IncPostLoadIssue(LoadIssueLabel)            {}
func (NoopRecorder) IncPageResult(string, PageResultLabel)      {}
