package posts

import (
	"fmt"
	"path/filepath"
	"strings"

	perrors "git.home.luguber.info/inful/blogbuilder/internal/posts/errors"
	"golang.org/x/text/unicode/norm"
)

// Identifier derives a post identifier from path relative to root.
// Path separators become "-" and the final extension is stripped, so
// "posts/2023/hello.md" under "posts" yields "2023-hello". The result is
// NFC-normalized so the same name always maps to the same identifier.
func Identifier(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", perrors.ErrInvalidRelativePath, path, err)
	}
	if rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return "", fmt.Errorf("%w: %s is not below %s", perrors.ErrInvalidRelativePath, path, root)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = filepath.ToSlash(rel)
	rel = strings.ReplaceAll(rel, "/", "-")
	return norm.NFC.String(rel), nil
}

// baseTitle returns the file name without its extension.
func baseTitle(path string) string {
	name := filepath.Base(path)
	return norm.NFC.String(strings.TrimSuffix(name, filepath.Ext(name)))
}
