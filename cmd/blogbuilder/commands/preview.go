package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/preview"
)

// PreviewCmd builds the blog, rebuilds on changes and serves the output.
type PreviewCmd struct {
	Port      int           `name:"port" help:"HTTP port (overrides preview.port)"`
	Interval  time.Duration `name:"interval" help:"Periodic rebuild interval (overrides preview.rebuild_interval)"`
	Output    string        `short:"o" help:"Output directory for generated pages (overrides output.directory)"`
	Posts     string        `name:"posts" help:"Posts directory (overrides posts.directory)"`
	Templates string        `name:"templates" help:"Templates directory (overrides templates.directory)"`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(config.Overrides{
		PostsDir:        p.Posts,
		TemplatesDir:    p.Templates,
		OutputDir:       p.Output,
		PreviewPort:     p.Port,
		RebuildInterval: p.Interval,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, _ = fmt.Fprintf(g.out(), "Serving %s on http://localhost:%d/ (Ctrl+C to stop)\n", cfg.Output.Directory, cfg.Preview.Port)
	return preview.New(cfg).Run(ctx)
}
