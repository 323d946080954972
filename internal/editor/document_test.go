package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/storytime/internal/story"
)

func TestNewDocument_CopiesInitialContent(t *testing.T) {
	initial := story.NewSkeleton("Draft")
	doc := NewDocument(initial, DefaultSchema())

	initial[0].Content[0].Text = "changed outside"

	assert.Equal(t, "Draft", story.DeriveTitle(doc.Blocks()))
	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, 0, doc.Version())
}

func TestDocument_BlocksIsCopy(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())

	blocks := doc.Blocks()
	blocks[0].Content[0].Text = "mutated"

	assert.Equal(t, "Draft", story.DeriveTitle(doc.Blocks()))
}

func TestDocument_EmptyBlocksNotNil(t *testing.T) {
	doc := NewDocument(nil, DefaultSchema())
	assert.NotNil(t, doc.Blocks())
	assert.Empty(t, doc.Blocks())
}

func TestDocument_OnChangeFiresPerEdit(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())
	calls := 0
	doc.OnChange(func() { calls++ })

	require.NoError(t, doc.SetText(0, "Final"))
	require.NoError(t, doc.AppendParagraph("more"))
	require.NoError(t, doc.RemoveBlock(2))

	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, doc.Version())
}

func TestDocument_NoOpEditDoesNotNotify(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())
	calls := 0
	doc.OnChange(func() { calls++ })

	require.NoError(t, doc.SetText(0, "Draft"))
	require.NoError(t, doc.Replace(story.NewSkeleton("Draft")))
	doc.Update(func(b []story.Block) ([]story.Block, bool) { return b, false })

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, doc.Version())
}

func TestDocument_Unsubscribe(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())
	calls := 0
	unsubscribe := doc.OnChange(func() { calls++ })

	require.NoError(t, doc.SetText(0, "One"))
	unsubscribe()
	require.NoError(t, doc.SetText(0, "Two"))

	assert.Equal(t, 1, calls)
}

func TestDocument_SchemaRejectsUnknownBlockType(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())

	err := doc.InsertBlock(1, story.Block{Type: "bulletListItem"})

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Message, "bulletListItem")
	assert.Equal(t, 2, doc.Len())
}

func TestDocument_SchemaRejectsUnknownStyle(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())
	b := story.Block{
		Type:    story.BlockParagraph,
		Content: []story.InlineContent{{Type: story.InlineText, Text: "x", Styles: story.Styles{"bold": true}}},
	}

	err := doc.SetBlock(1, b)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Path, "styles")
}

func TestDocument_SchemaAllowsLinksAndColors(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())
	b := story.Block{
		Type: story.BlockParagraph,
		Content: []story.InlineContent{
			{Type: story.InlineText, Text: "see ", Styles: story.Styles{"textColor": "red"}},
			{Type: story.InlineLink, Href: "https://example.com", Content: []story.InlineContent{
				{Type: story.InlineText, Text: "here", Styles: story.Styles{"backgroundColor": "yellow"}},
			}},
		},
	}

	require.NoError(t, doc.SetBlock(1, b))
}

func TestDocument_IndexErrors(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())

	assert.Error(t, doc.SetText(5, "x"))
	assert.Error(t, doc.RemoveBlock(-1))
	assert.Error(t, doc.InsertBlock(3, story.Block{Type: story.BlockParagraph}))
	_, ok := doc.Block(2)
	assert.False(t, ok)
}

func TestDocument_InsertInMiddle(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("Draft"), DefaultSchema())
	mid := story.Block{Type: story.BlockParagraph, Content: []story.InlineContent{{Type: story.InlineText, Text: "mid", Styles: story.Styles{}}}}

	require.NoError(t, doc.InsertBlock(1, mid))

	b, ok := doc.Block(1)
	require.True(t, ok)
	assert.Equal(t, "mid", b.Text())
	assert.Equal(t, 3, doc.Len())
}

func TestDocument_ListenerMutationSettles(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("draft"), DefaultSchema())
	calls := 0
	// Upper-cases the title once; the follow-up round sees no change.
	doc.OnChange(func() {
		calls++
		doc.Update(func(b []story.Block) ([]story.Block, bool) {
			if b[0].Content[0].Text == "DRAFT" {
				return b, false
			}
			b[0].Content[0].Text = "DRAFT"
			return b, true
		})
	})

	require.NoError(t, doc.AppendParagraph("x"))

	assert.Equal(t, 2, calls)
	assert.Equal(t, "DRAFT", story.DeriveTitle(doc.Blocks()))
}

func TestDocument_ListenerLoopIsBounded(t *testing.T) {
	doc := NewDocument(story.NewSkeleton("n"), DefaultSchema())
	calls := 0
	doc.OnChange(func() {
		calls++
		_ = doc.AppendParagraph("again")
	})

	require.NoError(t, doc.AppendParagraph("start"))

	assert.Equal(t, maxDispatchRounds, calls)
}

func TestDocument_MissingStylesEqualEmpty(t *testing.T) {
	initial := []story.Block{
		{Type: story.BlockHeading, Props: story.Props{Level: 1}, Content: []story.InlineContent{{Type: story.InlineText, Text: "Draft"}}},
		{Type: story.BlockParagraph, Content: []story.InlineContent{{Type: story.InlineText, Text: "body"}}},
	}
	doc := NewDocument(initial, DefaultSchema())
	calls := 0
	doc.OnChange(func() { calls++ })

	require.NoError(t, doc.SetText(0, "Draft"))
	require.NoError(t, doc.SetBlock(1, initial[1]))
	require.NoError(t, doc.Replace(initial))

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, doc.Version())
	b, _ := doc.Block(1)
	assert.NotNil(t, b.Content[0].Styles)
}
