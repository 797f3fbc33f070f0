package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := "# Title\n\nHello\n"

	b, err := Split(input)
	require.NoError(t, err)
	require.False(t, b.Had)
	require.Empty(t, b.Raw)
	require.Equal(t, input, b.Body)
	require.Zero(t, b.Lines)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	b, err := Split("---\nkey: value\n---\n# Title\n")
	require.NoError(t, err)
	require.True(t, b.Had)
	require.Equal(t, "key: value\n", b.Raw)
	require.Equal(t, "# Title\n", b.Body)
	require.Equal(t, 3, b.Lines)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, err := Split("---\nkey: value\n# Title\n")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	b, err := Split("---\r\nkey: value\r\n---\r\n# Title\r\n")
	require.NoError(t, err)
	require.True(t, b.Had)
	require.Equal(t, "key: value\n", b.Raw)
	require.Equal(t, "# Title\r\n", b.Body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	b, err := Split("---\n---\n# Title")
	require.NoError(t, err)
	require.True(t, b.Had)
	require.Empty(t, b.Raw)
	require.Equal(t, "# Title", b.Body)
	require.Equal(t, 2, b.Lines)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	b, err := Split("---\na: 1\n---")
	require.NoError(t, err)
	require.True(t, b.Had)
	require.Equal(t, "a: 1\n", b.Raw)
	require.Empty(t, b.Body)
}

func TestSplit_ThematicBreakAloneIsNotFrontmatter(t *testing.T) {
	// A lone "---" with nothing after it is a thematic break.
	b, err := Split("---")
	require.NoError(t, err)
	require.False(t, b.Had)
	require.Equal(t, "---", b.Body)
}

func TestParseYAML_ValidYAML_ReturnsMap(t *testing.T) {
	fields, err := ParseYAML("title: Hello\ntags:\n  - one\n")
	require.NoError(t, err)
	require.Equal(t, "Hello", fields["title"])
	require.Equal(t, []any{"one"}, fields["tags"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML("")
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML(": not yaml")
	require.Error(t, err)
}
