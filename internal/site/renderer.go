package site

// Renderer produces page content from a template and page data.
type Renderer interface {
	Render(templatePath string, data PageData, pageType PageType) (string, error)
}

// RenderFunc adapts an ordinary function to Renderer.
type RenderFunc func(templatePath string, data PageData, pageType PageType) (string, error)

// Render calls f.
func (f RenderFunc) Render(templatePath string, data PageData, pageType PageType) (string, error) {
	return f(templatePath, data, pageType)
}
