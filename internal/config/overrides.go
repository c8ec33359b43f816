package config

import "time"

// Overrides holds values supplied on the command line. Zero values leave the
// corresponding setting untouched.
type Overrides struct {
	PostsDir        string
	TemplatesDir    string
	OutputDir       string
	Clean           *bool
	Concurrency     int
	PreviewPort     int
	RebuildInterval time.Duration
}

// WithOverrides returns a normalized and validated copy of c with o applied.
// The receiver is not modified.
func (c *Config) WithOverrides(o Overrides) (*Config, error) {
	out := c.Clone()
	if o.PostsDir != "" {
		out.Posts.Directory = o.PostsDir
	}
	if o.TemplatesDir != "" {
		out.Templates.Directory = o.TemplatesDir
	}
	if o.OutputDir != "" {
		out.Output.Directory = o.OutputDir
	}
	if o.Clean != nil {
		out.Output.Clean = *o.Clean
	}
	if o.Concurrency > 0 {
		out.Build.Concurrency = o.Concurrency
	}
	if o.PreviewPort > 0 {
		out.Preview.Port = o.PreviewPort
	}
	if o.RebuildInterval > 0 {
		out.Preview.RebuildInterval = o.RebuildInterval
	}

	Normalize(out)
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
