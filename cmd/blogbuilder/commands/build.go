package commands

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory for generated pages (overrides output.directory)"`
	Posts       string `name:"posts" help:"Posts directory (overrides posts.directory)"`
	Templates   string `name:"templates" help:"Templates directory (overrides templates.directory)"`
	Clean       bool   `help:"Remove the output directory before writing"`
	Concurrency int    `short:"j" help:"Number of pages rendered in parallel (overrides build.concurrency)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(config.Overrides{
		PostsDir:     b.Posts,
		TemplatesDir: b.Templates,
		OutputDir:    b.Output,
		Clean:        boolOverride(b.Clean),
		Concurrency:  b.Concurrency,
	})
	if err != nil {
		return err
	}
	return RunBuild(g, cfg, build.NewBuildService())
}

// RunBuild executes a full build with svc and prints a summary.
func RunBuild(g *Global, cfg *config.Config, svc build.BuildService) error {
	out := g.out()
	_, _ = fmt.Fprintln(out, "Starting blogbuilder build")

	ctx, cancel := signalContext()
	defer cancel()

	result, err := svc.Run(ctx, build.BuildRequest{Config: cfg})
	if err != nil {
		_, _ = fmt.Fprintln(out, "Build failed")
		return err
	}

	stats := result.Stats
	_, _ = fmt.Fprintf(out, "Loaded %d posts (%d tags, %d authors)\n", stats.Posts, stats.Tags, stats.Authors)
	if result.Report != nil {
		_, _ = fmt.Fprintf(out, "Wrote %d of %d pages to %s\n", result.Report.Written, result.Report.Pages, result.OutputPath)
		if n := result.Report.RenderFailures; n > 0 {
			_, _ = fmt.Fprintf(out, "%d pages failed to render; see log for details\n", n)
		}
	}
	if n := stats.LoadWarnings + stats.Skipped; n > 0 {
		_, _ = fmt.Fprintf(out, "%d posts had problems loading; see log for details\n", n)
	}
	slog.Debug("Build finished",
		slog.String("build_id", result.BuildID),
		slog.String("status", string(result.Status)),
		slog.Duration("duration", result.Duration))
	_, _ = fmt.Fprintf(out, "Build %s in %s\n", result.Status, result.Duration.Round(time.Millisecond))
	return nil
}
