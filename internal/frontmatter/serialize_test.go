package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeYAML_EmptyMap_ReturnsEmpty(t *testing.T) {
	out, err := SerializeYAML(map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestSerializeYAML_DeterministicOrderAndTrailingNewline(t *testing.T) {
	fields := map[string]any{
		"b": "two",
		"a": "one",
		"c": 3,
	}

	out1, err := SerializeYAML(fields)
	require.NoError(t, err)
	out2, err := SerializeYAML(fields)
	require.NoError(t, err)
	require.Equal(t, out1, out2)
	require.Equal(t, "a: one\nb: two\nc: 3\n", out1)
}

func TestSerializeYAML_NestedMap_SortsKeysRecursively(t *testing.T) {
	fields := map[string]any{
		"outer": map[string]any{
			"b": 2,
			"a": 1,
		},
	}

	out, err := SerializeYAML(fields)
	require.NoError(t, err)
	require.Equal(t, "outer:\n  a: 1\n  b: 2\n", out)
}

func TestFingerprint_StableAcrossFieldOrderAndSensitiveToBody(t *testing.T) {
	a, err := Fingerprint(map[string]any{"title": "x", "draft": false}, "# Hi")
	require.NoError(t, err)
	require.NotEmpty(t, a)

	fields, err := ParseYAML("draft: false\ntitle: x\n")
	require.NoError(t, err)
	b, err := Fingerprint(fields, "# Hi")
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := Fingerprint(fields, "# Hi!")
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestFingerprint_NoFields(t *testing.T) {
	a, err := Fingerprint(nil, "body")
	require.NoError(t, err)
	b, err := Fingerprint(map[string]any{}, "body")
	require.NoError(t, err)
	require.Equal(t, a, b)
}
