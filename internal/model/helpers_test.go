package model

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/blogbuilder/internal/posts"
	"github.com/stretchr/testify/require"
)

// buildFixture writes files below a fresh posts root, scans it and builds a model.
func buildFixture(t *testing.T, files map[string]string) (*Model, string) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}

	paths, err := posts.Scan(root, []string{".md", ".markdown", ".txt"})
	require.NoError(t, err)

	m, err := Build(paths, posts.LoadOptions{Root: root})
	require.NoError(t, err)
	return m, root
}

func ids(list []*posts.Post) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}
