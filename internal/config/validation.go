package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// MaxConcurrency bounds build.concurrency.
const MaxConcurrency = 256

// Validate checks a normalized configuration.
func Validate(c *Config) error {
	switch {
	case c.Posts.Directory == "":
		return invalid("posts.directory", "must not be empty")
	case len(c.Posts.Extensions) == 0:
		return invalid("posts.extensions", "at least one extension is required")
	case c.Posts.PreviewLength < 0:
		return invalid("posts.preview_length", "must not be negative")
	case strings.TrimSpace(c.Posts.PreviewSeparator) == "":
		return invalid("posts.preview_separator", "must not be empty")
	case c.Templates.Directory == "":
		return invalid("templates.directory", "must not be empty")
	case c.Output.Directory == "":
		return invalid("output.directory", "must not be empty")
	case c.Build.Concurrency > MaxConcurrency:
		return invalid("build.concurrency", fmt.Sprintf("must be at most %d", MaxConcurrency))
	case c.Preview.Port < 0 || c.Preview.Port > 65535:
		return invalid("preview.port", "must be between 0 and 65535")
	case c.Preview.RebuildInterval < 0:
		return invalid("preview.rebuild_interval", "must not be negative")
	}

	for _, other := range []struct{ field, dir string }{
		{"posts.directory", c.Posts.Directory},
		{"templates.directory", c.Templates.Directory},
	} {
		if within(other.dir, c.Output.Directory) {
			return invalid("output.directory", fmt.Sprintf("must not contain %s (%s)", other.field, other.dir))
		}
	}
	return nil
}

func invalid(field, reason string) error {
	return ferrors.ValidationError(fmt.Sprintf("invalid configuration: %s %s", field, reason)).
		WithContext("field", field).
		Build()
}

// within reports whether dir is root or a descendant of root.
func within(dir, root string) bool {
	absDir, err1 := filepath.Abs(dir)
	absRoot, err2 := filepath.Abs(root)
	if err1 != nil || err2 != nil {
		return filepath.Clean(dir) == filepath.Clean(root)
	}
	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
