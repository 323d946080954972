package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/storytime/internal/nav"
	"github.com/roach88/storytime/internal/story"
	"github.com/roach88/storytime/internal/workflow"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Title   string   // new first-block text
	Append  []string // paragraphs to append
	Content string   // JSON file replacing the whole block sequence
}

// EditResult holds the edit command's output.
type EditResult struct {
	Title    string `json:"title"`
	Previous string `json:"previous,omitempty"`
	Saved    bool   `json:"saved"`
	Path     string `json:"path"`
	Blocks   int    `json:"blocks"`
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <title>",
		Short: "Edit and save a story",
		Long: `Apply edits to a story and save it.

Edits run through the same normalization as the editor: the first block
becomes a heading, later blocks become paragraphs and emoji are removed.
The title is re-derived from the first block on save; a changed heading
renames the story.

Exit codes:
  0 - Story saved (or nothing to save)
  1 - Missing or duplicate title after the edit
  2 - Command error (story not found, unreadable content file, etc.)

Examples:
  storytime edit "Trip" --title "Road Trip"
  storytime edit "Trip" --append "Day one." --append "Day two."
  storytime edit "Trip" --content blocks.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "replace the heading text")
	cmd.Flags().StringArrayVar(&opts.Append, "append", nil, "append a paragraph (repeatable)")
	cmd.Flags().StringVar(&opts.Content, "content", "", "JSON file with the full block sequence")

	return cmd
}

func runEdit(opts *EditOptions, title string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := commandContext(cmd)

	stories, closeFn, err := opts.openStories()
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to open database", err)
	}
	defer closeFn()

	all, err := stories.Load(ctx)
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to load stories", err)
	}
	s, ok := story.Find(all, title)
	if !ok {
		return outputFailure(formatter, ErrCodeNotFound, "failed to edit story", &storyNotFoundError{title: title})
	}

	router := nav.NewRouter(nav.StoryPath(title))
	editor := workflow.NewEditor(s, stories, router, opts.WorkflowOptions())
	defer editor.Close()
	doc := editor.Document()

	if opts.Content != "" {
		blocks, err := readBlocks(opts.Content)
		if err != nil {
			return outputFailure(formatter, ErrCodeBadInput, "failed to read content", err)
		}
		if err := doc.Replace(blocks); err != nil {
			return outputFailure(formatter, ErrCodeBadInput, "content rejected", err)
		}
	}
	if cmd.Flags().Changed("title") {
		if err := doc.SetText(0, opts.Title); err != nil {
			return outputFailure(formatter, ErrCodeBadInput, "failed to set title", err)
		}
	}
	for _, p := range opts.Append {
		if err := doc.AppendParagraph(p); err != nil {
			return outputFailure(formatter, ErrCodeBadInput, "failed to append paragraph", err)
		}
	}

	result := EditResult{Title: title, Path: router.Pathname(), Blocks: doc.Len()}
	if editor.Dirty() {
		if err := editor.Save(ctx); err != nil {
			return outputFailure(formatter, ErrCodeStore, "failed to save story", err)
		}
		result.Saved = true
		result.Title = editor.OriginalTitle()
		result.Path = router.Pathname()
		if result.Title != title {
			result.Previous = title
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	switch {
	case !result.Saved:
		fmt.Fprintln(formatter.Writer, "Nothing to save.")
	case result.Previous != "":
		formatter.Pass("Saved %q (renamed from %q)", result.Title, result.Previous)
	default:
		formatter.Pass("Saved %q", result.Title)
	}
	return nil
}

// readBlocks reads a JSON array of blocks.
func readBlocks(path string) ([]story.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var blocks []story.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return blocks, nil
}
