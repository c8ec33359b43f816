package config

import "time"

// Default values.
const (
	DefaultPostsDir          = "./posts"
	DefaultTemplatesDir      = "./templates"
	DefaultOutputDir         = "./out"
	DefaultTemplateExtension = ".html"
	DefaultPreviewLength     = 70
	DefaultPreviewSeparator  = "==[END PREVIEW]=="
	DefaultConcurrency       = 4
	DefaultPreviewPort       = 1313
	DefaultDebounce          = 300 * time.Millisecond
)

// DefaultExtensions are the post file extensions scanned when none are configured.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// Default returns a new configuration populated with default values.
func Default() *Config {
	return &Config{
		Posts: PostsConfig{
			Directory:        DefaultPostsDir,
			Extensions:       DefaultExtensions(),
			PreviewLength:    DefaultPreviewLength,
			PreviewSeparator: DefaultPreviewSeparator,
		},
		Templates: TemplatesConfig{
			Directory: DefaultTemplatesDir,
			Extension: DefaultTemplateExtension,
		},
		Output: OutputConfig{
			Directory: DefaultOutputDir,
		},
		Build: BuildConfig{
			Concurrency: DefaultConcurrency,
		},
		Preview: PreviewConfig{
			Port:     DefaultPreviewPort,
			Debounce: DefaultDebounce,
		},
	}
}
