package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/model"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// Stage names used for logging and metrics.
const (
	StageScan     = "scan"
	StageModel    = "model"
	StageGenerate = "generate"
)

// BuildService is the canonical interface for executing blog builds.
type BuildService interface {
	// Run executes scan → model → generate and reports the outcome.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// Options modifies build behavior.
	Options BuildOptions
}

// BuildOptions provides optional configuration for build behavior.
type BuildOptions struct {
	// DiscoverOnly stops after the model is built; no pages are written.
	DiscoverOnly bool

	// SkipIfFingerprint skips page generation when the content fingerprint of
	// the model equals this value.
	SkipIfFingerprint string
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	BuildID string
	Status  BuildStatus

	// Model is the built model; nil when the build failed before it was built.
	Model *model.Model

	// Stats summarises the model.
	Stats model.Stats

	// Report describes page generation; nil when generation did not run.
	Report *site.Report

	// Fingerprint identifies the post content and templates the build used.
	Fingerprint string

	// OutputPath is the output directory.
	OutputPath string

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time

	// SkipReason explains why generation was skipped.
	SkipReason string
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates every page was rendered and written.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusWarning indicates the build finished with degraded output,
	// such as posts with invalid front-matter or pages that failed to render.
	BuildStatusWarning BuildStatus = "warning"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusSkipped indicates generation was skipped because nothing changed.
	BuildStatusSkipped BuildStatus = "skipped"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsTerminal returns true if the status represents a final state.
func (s BuildStatus) IsTerminal() bool {
	switch s {
	case BuildStatusSuccess, BuildStatusWarning, BuildStatusFailed, BuildStatusSkipped, BuildStatusCancelled:
		return true
	default:
		return false
	}
}

// IsSuccess returns true if the build produced usable output.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning || s == BuildStatusSkipped
}
