package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/roach88/storytime/internal/config"
	"github.com/roach88/storytime/internal/export"
	"github.com/roach88/storytime/internal/story"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Dir string
}

// ExportResult holds the export command's output.
type ExportResult struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export [title...]",
		Short: "Export stories as Markdown",
		Long: `Write stories to Markdown files, one file per story named after
the title slug ("My Story" -> my-story.md). Without titles every story is
exported.

Examples:
  storytime export --dir ./out
  storytime export "Trip" "Notes"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "output directory (default from config, then "+config.DefaultExportDir+")")

	return cmd
}

func runExport(opts *ExportOptions, titles []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dir := opts.Dir
	if dir == "" {
		dir = opts.Config().Export.Dir
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

	selected := all
	if len(titles) > 0 {
		selected = make([]story.Story, 0, len(titles))
		for _, title := range titles {
			s, ok := story.Find(all, title)
			if !ok {
				return outputFailure(formatter, ErrCodeNotFound, "failed to export", &storyNotFoundError{title: title})
			}
			selected = append(selected, s)
		}
	}

	files, err := export.WriteAll(dir, selected)
	if err != nil {
		if opts.Format != "json" {
			for _, e := range multierr.Errors(err) {
				formatter.Fail("%v", e)
			}
		}
		return outputFailure(formatter, ErrCodeWriteFailed, "export failed", err)
	}

	result := ExportResult{Dir: dir, Files: files}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	formatter.Pass("Exported %d stories to %s", len(files), dir)
	for _, f := range files {
		formatter.VerboseLog("  %s", f)
	}
	return nil
}
