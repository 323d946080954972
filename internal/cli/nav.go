package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/storytime/internal/app"
	"github.com/roach88/storytime/internal/nav"
)

// NavResult holds the nav command's output.
type NavResult struct {
	Items []nav.Item `json:"items"`
	View  *NavView   `json:"view,omitempty"`
}

// NavView describes the page a segment opens.
type NavView struct {
	Segment string `json:"segment"`
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Title   string `json:"title,omitempty"`
}

// NewNavCommand creates the nav command.
func NewNavCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav [segment]",
		Short: "Show the navigation menu",
		Long: `Print the navigation tree built from the stored stories.

With a segment ("add", "home", "story-<title>", ...) also print the page
that selecting it opens.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			segment := ""
			if len(args) == 1 {
				segment = args[0]
			}
			return runNav(rootOpts, segment, cmd)
		},
	}

	return cmd
}

func runNav(opts *RootOptions, segment string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := commandContext(cmd)

	stories, closeFn, err := opts.openStories()
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to open database", err)
	}
	defer closeFn()

	shell, err := app.NewShell(ctx, stories, nav.NewRouter("/"), opts.WorkflowOptions())
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to build navigation", err)
	}
	defer shell.Close()

	result := NavResult{Items: shell.Navigation()}
	if segment != "" {
		shell.Select(segment)
		screen, err := shell.Open(ctx)
		if err != nil {
			return outputFailure(formatter, ErrCodeStore, "failed to open page", err)
		}
		if screen.Editor != nil {
			screen.Editor.Close()
		}
		result.View = &NavView{
			Segment: shell.Router().Segment(),
			Path:    shell.Router().Pathname(),
			Kind:    string(screen.View.Kind),
			Title:   screen.View.Title,
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	writeTree(formatter.Writer, result.Items, 0)
	if v := result.View; v != nil {
		fmt.Fprintln(formatter.Writer)
		formatter.Heading("%s -> %s", v.Path, v.Kind)
	}
	return nil
}

// writeTree prints items as an indented outline.
func writeTree(w io.Writer, items []nav.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		switch item.Kind {
		case nav.KindDivider:
			fmt.Fprintf(w, "%s---\n", indent)
		case nav.KindHeader:
			fmt.Fprintf(w, "%s%s\n", indent, item.Title)
		default:
			fmt.Fprintf(w, "%s  %s (%s)\n", indent, item.Title, item.Segment)
		}
		if len(item.Children) > 0 {
			writeTree(w, item.Children, depth+1)
		}
	}
}
