package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/storytime/internal/schema"
	"github.com/roach88/storytime/internal/workflow"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import stories from a JSON file",
		Long: `Append the stories in a JSON file to the collection.

The file holds an array of {"title", "content"} records, the same layout
the collection is stored in. It is checked against the story schema,
each story is normalized and its title re-derived from its heading. A
file with a schema violation, a blank heading, or a title that repeats or
already exists is rejected as a whole.

Exit codes:
  0 - Stories imported
  1 - File rejected (schema, missing or duplicate title)
  2 - Command error (file not found, database unavailable, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return outputFailure(formatter, ErrCodeNotFound, "failed to read import file",
			WrapExitError(ExitCommandError, fmt.Sprintf("cannot read %s", path), err))
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return outputFailure(formatter, ErrCodeGeneric, "failed to load schema", err)
	}

	stories, closeFn, err := opts.openStories()
	if err != nil {
		return outputFailure(formatter, ErrCodeStore, "failed to open database", err)
	}
	defer closeFn()

	result, err := workflow.Import(commandContext(cmd), stories, validator, filepath.Base(path), data, opts.WorkflowOptions())
	if err != nil {
		return outputFailure(formatter, ErrCodeBadInput, "import rejected", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	formatter.Pass("Imported %d stories", len(result.Titles))
	for _, title := range result.Titles {
		fmt.Fprintf(formatter.Writer, "  %s\n", title)
	}
	if result.Normalized > 0 {
		formatter.VerboseLog("%d stories were normalized", result.Normalized)
	}
	return nil
}
