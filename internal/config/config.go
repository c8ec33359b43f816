// Package config loads and validates the blogbuilder configuration file.
//
// A Config is treated as immutable once loaded: command line flags are merged
// through WithOverrides, which returns a new value.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "blogbuilder.yaml"

// Config is the complete blogbuilder configuration.
type Config struct {
	Posts     PostsConfig     `yaml:"posts"`
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
	Build     BuildConfig     `yaml:"build"`
	Preview   PreviewConfig   `yaml:"preview"`
}

// PostsConfig describes where posts live and how previews are derived.
type PostsConfig struct {
	Directory        string   `yaml:"directory"`
	Extensions       []string `yaml:"extensions"`
	PreviewLength    int      `yaml:"preview_length"`
	PreviewSeparator string   `yaml:"preview_separator"`
}

// TemplatesConfig locates the page templates.
type TemplatesConfig struct {
	Directory string `yaml:"directory"`
	Extension string `yaml:"extension"`
}

// OutputConfig controls where pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Remove the output directory before writing
}

// BuildConfig tunes the generation phase.
type BuildConfig struct {
	Concurrency int `yaml:"concurrency"` // Maximum pages written in parallel
}

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Port            int           `yaml:"port"`
	Debounce        time.Duration `yaml:"debounce"`
	RebuildInterval time.Duration `yaml:"rebuild_interval"` // Zero disables periodic rebuilds
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Posts.Extensions = slices.Clone(c.Posts.Extensions)
	return &out
}

// Load reads the configuration file at path.
//
// Variables from .env.local and .env are added to the environment first,
// without overriding variables that are already set. ${VAR} references in the
// file are expanded before the YAML is decoded over Default(). The result is
// normalized and validated.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		slog.Warn("Failed to load .env file", slog.String("error", err.Error()))
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user supplied config path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.NewError(ferrors.CategoryNotFound, "configuration file not found").
				WithCause(ErrConfigNotFound).
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.ConfigError("cannot read configuration file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	return Parse(data)
}

// Parse decodes YAML configuration data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.ConfigError("cannot parse configuration").WithCause(err).Build()
	}

	res := Normalize(cfg)
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", slog.String("detail", w))
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist and required is false.
func LoadOrDefault(path string, required bool) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !required && errors.Is(err, ErrConfigNotFound) {
		slog.Debug("No configuration file, using defaults", slog.String("path", path))
		return Default(), nil
	}
	return nil, err
}

// ErrConfigNotFound indicates the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

func (c *Config) String() string {
	return fmt.Sprintf("posts=%s templates=%s output=%s", c.Posts.Directory, c.Templates.Directory, c.Output.Directory)
}
