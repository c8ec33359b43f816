package posts

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	perrors "git.home.luguber.info/inful/blogbuilder/internal/posts/errors"
)

// Scan walks root recursively and returns every file whose extension is in
// extensions. Matching is case-insensitive. Hidden files and directories are
// skipped and symlinked directories below root are not followed. root itself
// may be a symlink to a directory; returned paths are always below root as
// given. The result is sorted.
func Scan(root string, extensions []string) ([]string, error) {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[normalizeExt(ext)] = struct{}{}
	}

	walkRoot, err := resolveRoot(root)
	if err != nil {
		return nil, scanError(root, err)
	}

	var paths []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != walkRoot && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		path = filepath.Join(root, rel)
		paths = append(paths, path)
		slog.Debug("Discovered post file", logfields.Path(path))
		return nil
	})
	if err != nil {
		return nil, scanError(root, err)
	}

	slices.Sort(paths)
	return paths, nil
}

// resolveRoot follows symlinks in root and checks that it names a directory.
func resolveRoot(root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", root)
	}
	return resolved, nil
}

func scanError(root string, err error) error {
	return errors.ScanError(fmt.Sprintf("cannot scan posts directory %s", root)).
		WithCause(fmt.Errorf("%w: %w", perrors.ErrPostsDirWalkFailed, err)).
		WithContext("root", root).
		Build()
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
