package story

// Block types understood by the editor schema.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
)

// Inline content types.
const (
	InlineText = "text"
	InlineLink = "link"
)

// Story is a titled rich-text document.
// Title is the sole identifier used for lookup, routing and update matching.
type Story struct {
	Title   string  `json:"title"`
	Content []Block `json:"content"`
}

// Block is a typed content unit holding ordered inline content.
type Block struct {
	ID       string          `json:"id,omitempty"`
	Type     string          `json:"type"`
	Props    Props           `json:"props"`
	Content  []InlineContent `json:"content"`
	Children []Block         `json:"children,omitempty"`
}

// Props carries the block attributes the schema allows.
// Level is only meaningful for headings.
type Props struct {
	Level           int    `json:"level,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextAlignment   string `json:"textAlignment,omitempty"`
}

// Styles maps an inline style name to its value (string or bool).
type Styles map[string]any

// InlineContent is a text span or a link wrapping text spans.
type InlineContent struct {
	Type    string          `json:"type"`
	Text    string          `json:"text"`
	Styles  Styles          `json:"styles"`
	Href    string          `json:"href,omitempty"`
	Content []InlineContent `json:"content,omitempty"`
}

// Text returns the concatenated text of the block's inline content.
func (b Block) Text() string {
	return joinText(b.Content)
}

func joinText(items []InlineContent) string {
	var out []byte
	for _, item := range items {
		out = append(out, item.Text...)
		if len(item.Content) > 0 {
			out = append(out, joinText(item.Content)...)
		}
	}
	return string(out)
}

// Clone returns a deep copy of the story.
func (s Story) Clone() Story {
	return Story{Title: s.Title, Content: CloneBlocks(s.Content)}
}

// CloneBlocks returns a deep copy of a block sequence.
// A nil input yields nil.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	b.Content = cloneInline(b.Content)
	b.Children = CloneBlocks(b.Children)
	return b
}

func cloneInline(items []InlineContent) []InlineContent {
	if items == nil {
		return nil
	}
	out := make([]InlineContent, len(items))
	for i, item := range items {
		if item.Styles != nil {
			styles := make(Styles, len(item.Styles))
			for k, v := range item.Styles {
				styles[k] = v
			}
			item.Styles = styles
		}
		item.Content = cloneInline(item.Content)
		out[i] = item
	}
	return out
}

// Titles returns the titles of stories in order.
func Titles(stories []Story) []string {
	titles := make([]string, len(stories))
	for i, s := range stories {
		titles[i] = s.Title
	}
	return titles
}

// Find returns the story with the exact title.
func Find(stories []Story, title string) (Story, bool) {
	for _, s := range stories {
		if s.Title == title {
			return s, true
		}
	}
	return Story{}, false
}
