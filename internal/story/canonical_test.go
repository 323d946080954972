package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortedKeysNoHTMLEscape(t *testing.T) {
	blocks := []Block{{
		Type:    BlockParagraph,
		Content: []InlineContent{{Type: InlineText, Text: "<b>&", Styles: Styles{"z": "1", "a": true}}},
	}}

	data, err := MarshalCanonical(blocks)
	require.NoError(t, err)

	assert.Equal(t,
		`[{"content":[{"styles":{"a":true,"z":"1"},"text":"<b>&","type":"text"}],"props":{},"type":"paragraph"}]`,
		string(data))
}

func TestMarshalCanonical_LineSeparatorsLiteral(t *testing.T) {
	blocks := []Block{paragraph("a\u2028b")}

	data, err := MarshalCanonical(blocks)
	require.NoError(t, err)

	assert.Contains(t, string(data), "a\u2028b")
	assert.NotContains(t, string(data), `\u2028`)
}

func TestContentHash_NFCEquivalent(t *testing.T) {
	composed := []Block{paragraph("caf\u00e9")}
	decomposed := []Block{paragraph("cafe\u0301")}

	h1, err := ContentHash(composed)
	require.NoError(t, err)
	h2, err := ContentHash(decomposed)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestContentHash_DiffersOnEdit(t *testing.T) {
	h1, err := ContentHash(NewSkeleton("A"))
	require.NoError(t, err)
	h2, err := ContentHash(NewSkeleton("B"))
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestContentHash_RejectsFloatStyles(t *testing.T) {
	blocks := []Block{{
		Type:    BlockParagraph,
		Content: []InlineContent{{Type: InlineText, Text: "x", Styles: Styles{"size": 1.5}}},
	}}

	_, err := ContentHash(blocks)
	assert.Error(t, err)
}
