package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/storytime/internal/export"
	"github.com/roach88/storytime/internal/story"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <title>",
		Short: "Print a story",
		Long: `Print one story, looked up by its exact title.

Text output is the story rendered as Markdown. JSON output is the stored
record: title plus block content.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, title string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	s, err := loadStory(opts, cmd, title)
	if err != nil {
		return outputFailure(formatter, codeFor(err), "failed to show story", err)
	}

	if opts.Format == "json" {
		return formatter.Success(s)
	}
	fmt.Fprint(formatter.Writer, export.Render(s))
	return nil
}

// storyNotFoundError reports a title with no stored story.
type storyNotFoundError struct {
	title string
}

func (e *storyNotFoundError) Error() string {
	return fmt.Sprintf("story not found: %q", e.title)
}

// loadStory opens the database and returns the story titled title.
func loadStory(opts *RootOptions, cmd *cobra.Command, title string) (story.Story, error) {
	stories, closeFn, err := opts.openStories()
	if err != nil {
		return story.Story{}, err
	}
	defer closeFn()

	all, err := stories.Load(commandContext(cmd))
	if err != nil {
		return story.Story{}, err
	}
	s, ok := story.Find(all, title)
	if !ok {
		return story.Story{}, &storyNotFoundError{title: title}
	}
	return s, nil
}

// codeFor picks the reported code for a command error.
func codeFor(err error) string {
	var nf *storyNotFoundError
	if errors.As(err, &nf) {
		return ErrCodeNotFound
	}
	return ErrCodeStore
}
