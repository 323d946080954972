package editor

import (
	"fmt"
	"reflect"

	"github.com/roach88/storytime/internal/story"
)

// maxDispatchRounds bounds how many times listeners are re-run when they
// keep mutating the document from inside a notification.
const maxDispatchRounds = 16

// Document is the in-memory block sequence being edited.
//
// Thread-safety: Document is confined to one goroutine, like the UI event
// loop it stands in for. It is not safe for concurrent use.
type Document struct {
	schema    Schema
	blocks    []story.Block
	version   int
	listeners []listener
	nextID    int

	dispatching bool
	pending     bool
}

type listener struct {
	id int
	fn func()
}

// NewDocument seeds a document with initial content. The content is copied
// and taken as-is apart from missing style maps, which become empty; the
// schema applies to later edits.
func NewDocument(initial []story.Block, schema Schema) *Document {
	return &Document{
		schema: schema,
		blocks: withStyles(initial),
	}
}

// Schema returns the schema edits are checked against.
func (d *Document) Schema() Schema {
	return d.schema
}

// Blocks returns a deep copy of the current block sequence.
func (d *Document) Blocks() []story.Block {
	out := story.CloneBlocks(d.blocks)
	if out == nil {
		out = []story.Block{}
	}
	return out
}

// Len returns the number of top-level blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Block returns a copy of the block at index i.
func (d *Document) Block(i int) (story.Block, bool) {
	if i < 0 || i >= len(d.blocks) {
		return story.Block{}, false
	}
	return d.blocks[i].Clone(), true
}

// Version counts the changes applied since the document was created.
// Mutations that leave the content identical do not bump it.
func (d *Document) Version() int {
	return d.version
}

// OnChange registers fn to run after every change. The returned function
// removes the listener.
func (d *Document) OnChange(fn func()) (unsubscribe func()) {
	id := d.nextID
	d.nextID++
	d.listeners = append(d.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetBlock replaces the block at index i.
func (d *Document) SetBlock(i int, b story.Block) error {
	if i < 0 || i >= len(d.blocks) {
		return fmt.Errorf("set block: index %d out of range [0,%d)", i, len(d.blocks))
	}
	if err := d.schema.Check([]story.Block{b}); err != nil {
		return fmt.Errorf("set block %d: %w", i, err)
	}
	b = withStyles([]story.Block{b})[0]
	if reflect.DeepEqual(d.blocks[i], b) {
		return nil
	}
	d.blocks[i] = b
	d.changed()
	return nil
}

// InsertBlock inserts b before index i. i == Len() appends.
func (d *Document) InsertBlock(i int, b story.Block) error {
	if i < 0 || i > len(d.blocks) {
		return fmt.Errorf("insert block: index %d out of range [0,%d]", i, len(d.blocks))
	}
	if err := d.schema.Check([]story.Block{b}); err != nil {
		return fmt.Errorf("insert block %d: %w", i, err)
	}
	d.blocks = append(d.blocks, story.Block{})
	copy(d.blocks[i+1:], d.blocks[i:])
	d.blocks[i] = withStyles([]story.Block{b})[0]
	d.changed()
	return nil
}

// AppendParagraph adds a paragraph holding text at the end.
func (d *Document) AppendParagraph(text string) error {
	return d.InsertBlock(len(d.blocks), story.Block{
		Type:    story.BlockParagraph,
		Content: []story.InlineContent{{Type: story.InlineText, Text: text, Styles: story.Styles{}}},
	})
}

// RemoveBlock deletes the block at index i.
func (d *Document) RemoveBlock(i int) error {
	if i < 0 || i >= len(d.blocks) {
		return fmt.Errorf("remove block: index %d out of range [0,%d)", i, len(d.blocks))
	}
	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
	d.changed()
	return nil
}

// SetText replaces the inline content of block i with one text span,
// keeping the styles of the block's first span.
func (d *Document) SetText(i int, text string) error {
	b, ok := d.Block(i)
	if !ok {
		return fmt.Errorf("set text: index %d out of range [0,%d)", i, len(d.blocks))
	}
	styles := story.Styles{}
	if len(b.Content) > 0 && b.Content[0].Styles != nil {
		styles = b.Content[0].Styles
	}
	b.Content = []story.InlineContent{{Type: story.InlineText, Text: text, Styles: styles}}
	return d.SetBlock(i, b)
}

// Replace swaps in a whole new block sequence.
func (d *Document) Replace(blocks []story.Block) error {
	if err := d.schema.Check(blocks); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	blocks = withStyles(blocks)
	if reflect.DeepEqual(d.blocks, blocks) {
		return nil
	}
	d.blocks = blocks
	d.changed()
	return nil
}

// Update applies a programmatic edit from host code. fn receives a copy of
// the blocks and returns the new sequence and whether it differs. Host
// edits skip the schema check, so normalizing passes can repair content
// that predates the schema.
func (d *Document) Update(fn func(blocks []story.Block) ([]story.Block, bool)) {
	next, ok := fn(story.CloneBlocks(d.blocks))
	if !ok {
		return
	}
	d.blocks = withStyles(next)
	d.changed()
}

// withStyles returns a deep copy of blocks in which every span carries a
// style map, so a nil map and an empty one compare equal.
func withStyles(blocks []story.Block) []story.Block {
	out := story.CloneBlocks(blocks)
	fillBlockStyles(out)
	return out
}

func fillBlockStyles(blocks []story.Block) {
	for i := range blocks {
		fillInlineStyles(blocks[i].Content)
		fillBlockStyles(blocks[i].Children)
	}
}

func fillInlineStyles(items []story.InlineContent) {
	for i := range items {
		if items[i].Styles == nil {
			items[i].Styles = story.Styles{}
		}
		fillInlineStyles(items[i].Content)
	}
}

// changed bumps the version and notifies listeners. A change made while
// listeners are running schedules one more round instead of recursing.
func (d *Document) changed() {
	d.version++
	if d.dispatching {
		d.pending = true
		return
	}

	d.dispatching = true
	defer func() { d.dispatching = false }()

	for round := 0; round < maxDispatchRounds; round++ {
		d.pending = false
		listeners := append([]listener(nil), d.listeners...)
		for _, l := range listeners {
			l.fn()
		}
		if !d.pending {
			return
		}
	}
}
