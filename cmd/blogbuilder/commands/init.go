package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"github.com/natefinch/atomic"
)

const examplePostName = "hello-world.md"

const examplePost = `---
title: Hello, world
author: Unknown
date: "2024 01 01"
tags: [welcome]
---
This is an example post. Everything above the separator below is the preview
shown on the overview, tag and author pages.

==[END PREVIEW]==

Replace this file with your own posts.
`

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force     bool `help:"Overwrite existing configuration file and templates"`
	Templates bool `help:"Write the default templates and an example post" default:"true" negatable:""`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g, root.Config, i.Force, i.Templates)
}

// RunInit writes the example configuration to configPath and, when
// templates is set, the default templates and an example post into the
// directories named by the default configuration.
func RunInit(g *Global, configPath string, force, templates bool) error {
	out := g.out()
	_, _ = fmt.Fprintln(out, "Initializing blogbuilder project")
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	if !templates {
		_, _ = fmt.Fprintln(out, "initialized successfully")
		return nil
	}

	cfg := config.Default()
	written, err := render.WriteDefaults(cfg.Templates.Directory, cfg.Templates.Extension, force)
	if err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	for _, p := range written {
		_, _ = fmt.Fprintf(out, "Wrote template %s\n", p)
	}

	post, err := writeExamplePost(cfg.Posts.Directory)
	if err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	if post != "" {
		_, _ = fmt.Fprintf(out, "Wrote example post %s\n", post)
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}

// writeExamplePost seeds dir with a single post unless it already holds
// files. It returns the written path or "" when nothing was written.
func writeExamplePost(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", ferrors.FileSystemError("cannot read posts directory").WithCause(err).WithContext("dir", dir).Build()
	}
	if len(entries) > 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", ferrors.FileSystemError("cannot create posts directory").WithCause(err).WithContext("dir", dir).Build()
	}
	target := filepath.Join(dir, examplePostName)
	if err := atomic.WriteFile(target, strings.NewReader(examplePost)); err != nil {
		return "", ferrors.WriteError("cannot write example post").WithCause(err).WithContext("path", target).Build()
	}
	return target, nil
}
