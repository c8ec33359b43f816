// Package render is the default page renderer. It executes html/template
// files from the template directory and exposes the model and URL helpers to
// them.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// PartialsDir is the sub-directory of the template directory whose files are
// parsed alongside every page template.
const PartialsDir = "partials"

// Engine renders pages with html/template. Parsed templates are cached for the
// lifetime of the engine, so a new engine should be created per build.
type Engine struct {
	templateDir string
	ext         string
	funcs       template.FuncMap

	mu    sync.Mutex
	cache map[string]*template.Template
}

var _ site.Renderer = (*Engine)(nil)

// New returns an engine reading partials from templateDir/partials with the
// given file extension.
func New(templateDir, ext string) *Engine {
	return &Engine{
		templateDir: templateDir,
		ext:         ext,
		funcs:       FuncMap(),
		cache:       make(map[string]*template.Template),
	}
}

// Render implements site.Renderer.
func (e *Engine) Render(templatePath string, data site.PageData, pageType site.PageType) (string, error) {
	tpl, err := e.template(templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, filepath.Base(templatePath), data); err != nil {
		return "", ferrors.RenderError(fmt.Sprintf("cannot render %s", pageType)).
			WithCause(err).
			WithContext("template", templatePath).
			Build()
	}
	return buf.String(), nil
}

func (e *Engine) template(path string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.cache[path]; ok {
		return tpl, nil
	}

	tpl, err := e.parse(path)
	if err != nil {
		return nil, ferrors.RenderError("cannot parse template").
			WithCause(err).
			WithContext("template", path).
			Build()
	}
	e.cache[path] = tpl
	return tpl, nil
}

func (e *Engine) parse(path string) (*template.Template, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	tpl := template.New(filepath.Base(path)).Funcs(e.funcs).Option("missingkey=error")

	partials, err := filepath.Glob(filepath.Join(e.templateDir, PartialsDir, "*"+e.ext))
	if err != nil {
		return nil, err
	}
	if len(partials) > 0 {
		if tpl, err = tpl.ParseFiles(partials...); err != nil {
			return nil, fmt.Errorf("parse partials: %w", err)
		}
	}

	if tpl, err = tpl.ParseFiles(path); err != nil {
		return nil, err
	}
	if tpl.Lookup(filepath.Base(path)) == nil {
		return nil, errors.New("template defines no content")
	}
	return tpl, nil
}
