package posts

import (
	"path/filepath"
	"testing"
	"time"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	perrors "git.home.luguber.info/inful/blogbuilder/internal/posts/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FrontmatterOverlaysDefaults(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"2023/hello.md": "---\ntitle: Hello World\nauthor: Alice\ndate: 2023 01 01\ntags: [go, blog, go, \" \"]\nlayout: wide\n---\nFirst words.\n",
	})

	post, err := Load(filepath.Join(root, "2023", "hello.md"), LoadOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, "2023-hello", post.ID)
	assert.Equal(t, "Hello World", post.Title)
	assert.Equal(t, "Alice", post.Author)
	assert.Equal(t, "2023 01 01", post.Date)
	assert.Equal(t, []string{"go", "blog"}, post.Tags)
	assert.Equal(t, "First words.\n", post.Body)
	assert.Equal(t, "First words.\n", post.Preview)
	assert.Equal(t, "wide", post.Fields["layout"])
	layout, ok := post.Field("layout")
	assert.True(t, ok)
	assert.Equal(t, "wide", layout)
	_, ok = post.Field("missing")
	assert.False(t, ok)
	assert.NotEmpty(t, post.Fingerprint)
	assert.True(t, post.HasTag("go"))
	assert.False(t, post.HasTag("rust"))
}

func TestLoad_NoFrontmatterUsesDefaults(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"plain.txt": "Just text."})

	post, err := Load(filepath.Join(root, "plain.txt"), LoadOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, "plain", post.Title)
	assert.Equal(t, DefaultAuthor, post.Author)
	assert.Empty(t, post.Date)
	assert.Empty(t, post.Tags)
	assert.Equal(t, "Just text.", post.Body)
}

func TestLoad_ScalarTagAndPreviewLength(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"p.md": "---\ntags: solo\npreview-length: 4\n---\nabcdefgh",
	})

	post, err := Load(filepath.Join(root, "p.md"), LoadOptions{Root: root, PreviewLength: 6})
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, post.Tags)
	assert.Equal(t, 4, post.PreviewLength)
	assert.Equal(t, "abcd", post.Preview)
}

func TestLoad_SeparatorRemovedFromBody(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"p.md": "---\npreview: Explicit\n---\nIntro" + DefaultPreviewSeparator + "Rest",
	})

	post, err := Load(filepath.Join(root, "p.md"), LoadOptions{Root: root})
	require.NoError(t, err)
	assert.Equal(t, "Explicit", post.Preview)
	assert.Equal(t, "IntroRest", post.Body)
}

func TestLoad_InvalidFrontmatterKeepsDefaultsWithWarning(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"broken.md": "---\ntitle: [unclosed\n---\nBody that is dropped",
	})

	post, err := Load(filepath.Join(root, "broken.md"), LoadOptions{Root: root})
	require.Error(t, err)
	require.NotNil(t, post)

	assert.ErrorIs(t, err, perrors.ErrFrontmatterInvalid)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryLoad))
	assert.True(t, ferrors.HasSeverity(err, ferrors.SeverityWarning))

	assert.Equal(t, "broken", post.ID)
	assert.Equal(t, "broken", post.Title)
	assert.Equal(t, DefaultAuthor, post.Author)
	assert.Empty(t, post.Tags)
	assert.Empty(t, post.Body)
	assert.Empty(t, post.Preview)
}

func TestLoad_MissingClosingDelimiterKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"open.md": "---\ntitle: x\nbody"})

	post, err := Load(filepath.Join(root, "open.md"), LoadOptions{Root: root})
	require.ErrorIs(t, err, perrors.ErrFrontmatterInvalid)
	require.NotNil(t, post)
	assert.Equal(t, "open", post.Title)
}

func TestLoad_ReadFailureReturnsNil(t *testing.T) {
	root := t.TempDir()

	post, err := Load(filepath.Join(root, "gone.md"), LoadOptions{Root: root})
	require.ErrorIs(t, err, perrors.ErrPostReadFailed)
	assert.Nil(t, post)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryLoad))
}

func TestLoad_FingerprintTracksContent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "p.md")

	writeFiles(t, root, map[string]string{"p.md": "---\ntitle: A\n---\nbody"})
	first, err := Load(path, LoadOptions{Root: root})
	require.NoError(t, err)

	again, err := Load(path, LoadOptions{Root: root})
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint, again.Fingerprint)

	writeFiles(t, root, map[string]string{"p.md": "---\ntitle: A\n---\nchanged body"})
	changed, err := Load(path, LoadOptions{Root: root})
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, changed.Fingerprint)
}

func TestNormalizeTags(t *testing.T) {
	assert.Empty(t, normalizeTags(nil))
	assert.Equal(t, []string{"1", "true"}, normalizeTags([]any{1, true}))
	assert.Equal(t, []string{"a", "b"}, normalizeTags([]any{" a ", "b", "a", ""}))
	assert.Equal(t, []string{"x"}, normalizeTags("x"))
}

func TestScalarString_TimeUsesDateLayout(t *testing.T) {
	got, ok := scalarString(time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2023 06 01", got)
}
