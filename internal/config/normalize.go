package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizationResult captures adjustments made by Normalize.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes c in place: directories are cleaned, extensions are
// lowercased with a leading dot and de-duplicated, and out-of-range tuning
// values fall back to defaults.
func Normalize(c *Config) *NormalizationResult {
	res := &NormalizationResult{}

	c.Posts.Directory = cleanDir(c.Posts.Directory)
	c.Templates.Directory = cleanDir(c.Templates.Directory)
	c.Output.Directory = cleanDir(c.Output.Directory)

	exts := make([]string, 0, len(c.Posts.Extensions))
	seen := map[string]struct{}{}
	for _, e := range c.Posts.Extensions {
		n := NormalizeExtension(e)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		exts = append(exts, n)
	}
	c.Posts.Extensions = exts

	if ext := NormalizeExtension(c.Templates.Extension); ext != c.Templates.Extension {
		if ext == "" {
			ext = DefaultTemplateExtension
		}
		res.Warnings = append(res.Warnings, warnChanged("templates.extension", c.Templates.Extension, ext))
		c.Templates.Extension = ext
	}

	if c.Posts.PreviewLength == 0 {
		c.Posts.PreviewLength = DefaultPreviewLength
	}
	if c.Build.Concurrency <= 0 {
		res.Warnings = append(res.Warnings, warnChanged("build.concurrency", c.Build.Concurrency, DefaultConcurrency))
		c.Build.Concurrency = DefaultConcurrency
	}
	if c.Preview.Debounce <= 0 {
		c.Preview.Debounce = DefaultDebounce
	}
	return res
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func cleanDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	return filepath.Clean(dir)
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("%s: %v -> %v", field, from, to)
}
