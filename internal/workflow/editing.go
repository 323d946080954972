package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/roach88/storytime/internal/editor"
	"github.com/roach88/storytime/internal/nav"
	"github.com/roach88/storytime/internal/store"
	"github.com/roach88/storytime/internal/story"
)

// Editor runs the editing flow for one story.
//
// The story's content seeds a Document once; the Document owns every later
// in-memory edit. The Editor listens for changes, normalizes the document
// and re-derives the title. Nothing is persisted until Save.
type Editor struct {
	stories   *store.Stories
	navigator nav.Navigator
	logger    *slog.Logger
	doc       *editor.Document

	original    string
	title       string
	saved       []story.Block
	savedHash   string
	err         error
	unsubscribe func()
}

// NewEditor opens s for editing. Stored content that breaks the document
// rules is normalized right away, which leaves the editor dirty.
func NewEditor(s story.Story, stories *store.Stories, navigator nav.Navigator, opts Options) *Editor {
	session := opts.sessions().Generate()
	e := &Editor{
		stories:   stories,
		navigator: navigator,
		logger:    opts.logger().With("flow", "edit", "session", session),
		doc:       editor.NewDocument(s.Content, editor.DefaultSchema()),
		original:  s.Title,
		title:     story.DeriveTitle(s.Content),
	}
	e.markSaved(e.doc.Blocks())
	e.unsubscribe = e.doc.OnChange(e.OnContentChange)
	e.OnContentChange()
	return e
}

// Document returns the document being edited.
func (e *Editor) Document() *editor.Document {
	return e.doc
}

// OriginalTitle returns the title the story is stored under.
func (e *Editor) OriginalTitle() string {
	return e.original
}

// Title returns the title derived from the current first block.
func (e *Editor) Title() string {
	return e.title
}

// MissingTitle reports whether the current first block is blank. It is a
// live hint, independent of the last save attempt.
func (e *Editor) MissingTitle() bool {
	return e.title == ""
}

// Err returns the validation error from the last failed Save. It stays set
// until a Save succeeds.
func (e *Editor) Err() error {
	return e.err
}

// Dirty reports whether the document differs from what was last persisted.
// Content without a canonical hash (float style values) is compared
// structurally.
func (e *Editor) Dirty() bool {
	blocks := e.doc.Blocks()
	h := hashOrEmpty(blocks)
	if h == "" || e.savedHash == "" {
		return !reflect.DeepEqual(blocks, e.saved)
	}
	return h != e.savedHash
}

// OnContentChange normalizes the document after an edit:
//
//  1. the first block becomes a level 1 heading if it is not a heading
//  2. every later block that is not a paragraph becomes one
//  3. emoji are stripped from every text span
//
// Only blocks that change are rewritten, so a second call with no edit in
// between leaves the document and its version untouched.
func (e *Editor) OnContentChange() {
	e.doc.Update(story.Normalize)
	e.title = story.DeriveTitle(e.doc.Blocks())
}

// Save validates the derived title and writes the story back.
//
// The collection is re-read first so the duplicate check sees other
// writers' changes. The entry stored under the original title is replaced;
// if it has disappeared the story is appended instead. A rename sends the
// navigator to the story's new path.
func (e *Editor) Save(ctx context.Context) error {
	blocks, _ := story.Normalize(e.doc.Blocks())
	title := story.DeriveTitle(blocks)
	e.title = title

	if title == "" {
		e.err = story.NewMissingTitleError()
		e.logger.Debug("save rejected", "error", e.err)
		return e.err
	}

	all, err := e.stories.Load(ctx)
	if err != nil {
		return fmt.Errorf("save %q: %w", e.original, err)
	}
	if err := story.ValidateTitle(title, all, e.original); err != nil {
		e.err = err
		e.logger.Debug("save rejected", "title", title, "error", err)
		return err
	}

	updated := story.Story{Title: title, Content: blocks}
	replaced := false
	for i := range all {
		if all[i].Title == e.original {
			all[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		e.logger.Warn("stored story disappeared, appending", "original", e.original)
		all = append(all, updated)
	}

	if err := e.stories.Save(ctx, all); err != nil {
		return fmt.Errorf("save %q: %w", e.original, err)
	}

	renamed := title != e.original
	previous := e.original
	e.original = title
	e.err = nil
	e.markSaved(blocks)

	e.logger.Info("story saved", "title", title, "renamed_from", renamedFrom(renamed, previous))
	if renamed {
		e.navigator.Navigate(nav.StoryPath(title))
	}
	return nil
}

// Close detaches the editor from its document. Unsaved edits are dropped
// with it.
func (e *Editor) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

func (e *Editor) markSaved(blocks []story.Block) {
	e.saved = story.CloneBlocks(blocks)
	e.savedHash = hashOrEmpty(blocks)
}

func hashOrEmpty(blocks []story.Block) string {
	h, err := story.ContentHash(blocks)
	if err != nil {
		return ""
	}
	return h
}

func renamedFrom(renamed bool, previous string) string {
	if !renamed {
		return ""
	}
	return previous
}
