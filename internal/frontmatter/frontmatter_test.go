package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nauthor: Alice\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("author: Alice\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nauthor: Alice\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nauthor: Alice\r\n---\r\n# Title\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("author: Alice\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Only metadata\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Only metadata\n"), fm)
	require.Empty(t, body)
}

func TestSplit_StripsBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("---\ntitle: x\n---\nbody")...)

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Equal(t, []byte("body"), body)
}

func TestSplit_DelimiterInsideBodyIsKept(t *testing.T) {
	fm, body, _, err := Split([]byte("---\na: 1\n---\nintro\n---\nmore\n"))
	require.NoError(t, err)
	require.Equal(t, []byte("a: 1\n"), fm)
	require.Equal(t, []byte("intro\n---\nmore\n"), body)
}

func TestParseYAML_ValidYAML_ReturnsMap(t *testing.T) {
	fields, err := ParseYAML([]byte("author: Alice\ntags:\n  - x\n  - y\n"))
	require.NoError(t, err)
	require.Equal(t, "Alice", fields["author"])
	require.Equal(t, []any{"x", "y"}, fields["tags"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.NotNil(t, fields)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte("title: [unclosed\n"))
	require.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParseYAML_SequenceIsNotAMapping(t *testing.T) {
	_, err := ParseYAML([]byte("- a\n- b\n"))
	require.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParse_CombinesSplitAndYAML(t *testing.T) {
	fields, body, raw, err := Parse([]byte("---\ntitle: Hello\n---\nBody text\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", fields["title"])
	require.Equal(t, []byte("Body text\n"), body)
	require.Equal(t, []byte("title: Hello\n"), raw)
}
