package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"github.com/alecthomas/kong"
)

// Global carries state shared by all subcommands.
type Global struct {
	// Out receives user-facing output. Logs go to stderr.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blogbuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the blog from the posts directory"`
	Discover DiscoverCmd `cmd:"" help:"Load posts and list them with their tags and authors without rendering"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration and the default templates"`
	Preview  PreviewCmd  `cmd:"" help:"Build, watch for changes and serve the blog locally"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the configuration named by --config and applies o. A
// missing file is only an error when --config was set explicitly.
func (c *CLI) loadConfig(o config.Overrides) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config, c.Config != config.DefaultPath)
	if err != nil {
		return nil, err
	}
	return cfg.WithOverrides(o)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func boolOverride(set bool) *bool {
	if !set {
		return nil
	}
	return &set
}
