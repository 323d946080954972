package editor

import (
	"fmt"

	"github.com/roach88/storytime/internal/story"
)

// Schema restricts the block types and inline styles a Document accepts.
type Schema struct {
	BlockTypes   []string
	InlineTypes  []string
	InlineStyles []string
}

// DefaultSchema allows headings and paragraphs, text and link inline
// content, and the text color / background color styles.
func DefaultSchema() Schema {
	return Schema{
		BlockTypes:   []string{story.BlockHeading, story.BlockParagraph},
		InlineTypes:  []string{story.InlineText, story.InlineLink},
		InlineStyles: []string{"textColor", "backgroundColor"},
	}
}

// SchemaError describes content the schema does not allow.
type SchemaError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Message)
}

// Check validates blocks against the schema and returns the first
// violation found.
func (s Schema) Check(blocks []story.Block) error {
	return s.checkBlocks("blocks", blocks)
}

func (s Schema) checkBlocks(path string, blocks []story.Block) error {
	for i, b := range blocks {
		p := fmt.Sprintf("%s[%d]", path, i)
		if !contains(s.BlockTypes, b.Type) {
			return &SchemaError{Path: p + ".type", Message: fmt.Sprintf("block type %q not allowed", b.Type)}
		}
		if err := s.checkInline(p+".content", b.Content); err != nil {
			return err
		}
		if err := s.checkBlocks(p+".children", b.Children); err != nil {
			return err
		}
	}
	return nil
}

func (s Schema) checkInline(path string, items []story.InlineContent) error {
	for i, item := range items {
		p := fmt.Sprintf("%s[%d]", path, i)
		if !contains(s.InlineTypes, item.Type) {
			return &SchemaError{Path: p + ".type", Message: fmt.Sprintf("inline type %q not allowed", item.Type)}
		}
		for name := range item.Styles {
			if !contains(s.InlineStyles, name) {
				return &SchemaError{Path: p + ".styles", Message: fmt.Sprintf("style %q not allowed", name)}
			}
		}
		if err := s.checkInline(p+".content", item.Content); err != nil {
			return err
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
