package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/storytime/internal/config"
	"github.com/roach88/storytime/internal/store"
	"github.com/roach88/storytime/internal/workflow"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DBPath     string
	ConfigPath string
	LogLevel   string
	NoColor    bool

	// Sessions overrides the session ID generator (for testing).
	// If nil, workflows use UUIDv7 session IDs.
	Sessions workflow.SessionGenerator

	cfg    *config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the storytime CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "storytime",
		Short: "storytime - titled rich-text stories",
		Long: `Create, list, edit and export stories kept in a local SQLite file.

Every story is a titled document whose first block is a heading holding
the title. Titles are unique and identify stories everywhere.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (default from config, then "+config.DefaultDatabasePath+")")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewNavCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// resolve loads the config file and applies flag overrides. Flags win
// over the file; the file wins over defaults.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}
	if o.DBPath != "" {
		cfg.Database.Path = o.DBPath
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.Verbose && o.LogLevel == "" {
		cfg.Logging.Level = "debug"
	}

	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid log level", err)
	}
	o.cfg = cfg
	o.logger = setupLogger(level, cmd.ErrOrStderr())
	return nil
}

// Config returns the resolved configuration. Commands built without the
// root (as in tests) get the defaults with DBPath applied.
func (o *RootOptions) Config() *config.Config {
	if o.cfg == nil {
		cfg := config.Default()
		if o.DBPath != "" {
			cfg.Database.Path = o.DBPath
		}
		o.cfg = cfg
	}
	return o.cfg
}

// Logger returns the resolved logger, discarding output when the root
// did not configure one.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// WorkflowOptions returns the options shared by every workflow.
func (o *RootOptions) WorkflowOptions() workflow.Options {
	return workflow.Options{Logger: o.Logger(), Sessions: o.Sessions}
}

// formatter returns an output formatter bound to the command's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		NoColor:   o.NoColor,
	}
}

// openStories opens the configured database and returns the collection
// stored in it, plus a close function for the database.
func (o *RootOptions) openStories() (*store.Stories, func(), error) {
	cfg := o.Config()
	logger := o.Logger()

	logger.Debug("opening database", "path", cfg.Database.Path)
	slot, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	closeFn := func() {
		if closeErr := slot.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}
	return store.NewStories(slot, cfg.Storage.Key, logger), closeFn, nil
}

// setupLogger builds the text logger for level, writing to w.
func setupLogger(level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
