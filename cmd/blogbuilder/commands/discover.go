package commands

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/model"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Posts string `name:"posts" help:"Posts directory (overrides posts.directory)"`
}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(config.Overrides{PostsDir: d.Posts})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := build.NewBuildService().Run(ctx, build.BuildRequest{
		Config:  cfg,
		Options: build.BuildOptions{DiscoverOnly: true},
	})
	if err != nil {
		return err
	}
	return printModel(g, result.Model)
}

func printModel(g *Global, m *model.Model) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Discovered %d posts\n\n", m.Len())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tID\tTITLE\tAUTHOR\tTAGS")
	for _, entry := range m.ByDate() {
		p := entry.Post
		date := p.Date
		if date == "" {
			date = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", date, p.ID, p.Title, p.Author, strings.Join(p.Tags, ", "))
		slog.Debug("Post discovered", logfields.PostID(p.ID), logfields.Path(p.SourcePath))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "\nTags:")
	for _, tag := range m.Tags() {
		_, _ = fmt.Fprintf(out, "  %s (%d)\n", tag, len(m.TagIDs(tag)))
	}
	_, _ = fmt.Fprintln(out, "\nAuthors:")
	for _, author := range m.Authors() {
		_, _ = fmt.Fprintf(out, "  %s (%d)\n", author, len(m.AuthorIDs(author)))
	}
	return nil
}
