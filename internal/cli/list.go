package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/roach88/storytime/internal/story"
)

// Sort orders accepted by list.
const (
	SortStored  = "stored"
	SortNatural = "natural"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Sort string
}

// ListResult holds the list command's output.
type ListResult struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List story titles",
		Long: `List the titles of all stored stories.

By default titles appear in the order they were created, the same order
as the navigation menu. --sort natural orders them the way people read
numbers ("Part 2" before "Part 10").

Examples:
  storytime list
  storytime list --sort natural --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sort, "sort", SortStored, "title order (stored|natural)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Sort != SortStored && opts.Sort != SortNatural {
		return outputFailure(formatter, ErrCodeGeneric, "invalid sort",
			NewExitError(ExitCommandError, fmt.Sprintf("invalid sort %q: must be %s or %s", opts.Sort, SortStored, SortNatural)))
	}

	stories, closeFn, err := opts.openStories()
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to open database", err)
	}
	defer closeFn()

	all, err := stories.Load(commandContext(cmd))
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to load stories", err)
	}

	titles := story.Titles(all)
	if opts.Sort == SortNatural {
		sort.Sort(natural.StringSlice(titles))
	}
	formatter.VerboseLog("Loaded %d stories from %s", len(titles), opts.Config().Database.Path)

	if opts.Format == "json" {
		return formatter.Success(ListResult{Titles: titles, Count: len(titles)})
	}

	if len(titles) == 0 {
		fmt.Fprintln(formatter.Writer, "No stories yet.")
		return nil
	}
	formatter.Heading("My Stories (%d)", len(titles))
	for _, title := range titles {
		fmt.Fprintf(formatter.Writer, "  %s\n", title)
	}
	return nil
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
