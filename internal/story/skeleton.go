package story

// NewSkeleton builds the content of a freshly created story: a level 1
// heading holding the title as its only text span, then an empty paragraph.
func NewSkeleton(title string) []Block {
	return []Block{
		{
			Type:  BlockHeading,
			Props: Props{Level: 1},
			Content: []InlineContent{
				{Type: InlineText, Text: title, Styles: Styles{}},
			},
		},
		{
			Type: BlockParagraph,
			Content: []InlineContent{
				{Type: InlineText, Text: "", Styles: Styles{}},
			},
		},
	}
}

// New returns a story with the skeleton content for title.
func New(title string) Story {
	return Story{Title: title, Content: NewSkeleton(title)}
}
