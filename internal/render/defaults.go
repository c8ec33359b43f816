package render

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"github.com/natefinch/atomic"
)

//go:embed defaults
var defaultTemplates embed.FS

const defaultsRoot = "defaults"

// WriteDefaults copies the built-in templates into dir, renaming them to use
// ext. Existing files are kept unless force is set. It returns the paths that
// were written.
func WriteDefaults(dir, ext string, force bool) ([]string, error) {
	var written []string
	err := fs.WalkDir(defaultTemplates, defaultsRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel := strings.TrimPrefix(p, defaultsRoot+"/")
		rel = strings.TrimSuffix(rel, path.Ext(rel)) + ext
		target := filepath.Join(dir, filepath.FromSlash(rel))

		if _, statErr := os.Stat(target); statErr == nil && !force {
			return nil
		} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return statErr
		}

		data, err := defaultTemplates.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return err
		}
		if err := atomic.WriteFile(target, bytes.NewReader(data)); err != nil {
			return err
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return written, ferrors.FileSystemError("cannot write default templates").
			WithCause(err).
			WithContext("dir", dir).
			Build()
	}
	return written, nil
}
