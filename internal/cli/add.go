package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/storytime/internal/nav"
	"github.com/roach88/storytime/internal/workflow"
)

// AddResult holds the add command's output.
type AddResult struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a story",
		Long: `Create a story with the given title.

The title is trimmed. It must not be empty and must not match an existing
title exactly. The new story holds a heading with the title followed by
an empty paragraph.

Exit codes:
  0 - Story created
  1 - Missing or duplicate title
  2 - Command error (database unavailable, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runAdd(opts *RootOptions, title string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	stories, closeFn, err := opts.openStories()
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to open database", err)
	}
	defer closeFn()

	router := nav.NewRouter(nav.AddPath())
	creator := workflow.NewCreator(stories, router, opts.WorkflowOptions())
	creator.ChooseManual()

	created, err := creator.Submit(commandContext(cmd), title)
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to add story", err)
	}

	result := AddResult{Title: created.Title, Path: router.Pathname()}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	formatter.Pass("Added %q", result.Title)
	formatter.VerboseLog("Path: %s", result.Path)
	return nil
}
