package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"timelog/internal/config"
	"timelog/internal/errors"
	"timelog/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	loader     *config.Loader
	newAPI     APIFactory
	config     *config.Config
	app        *App
	closeStore func() error
}

// NewRootCommand creates the root cobra command with global flags. The
// configuration is loaded by loader and the storage opened by newAPI once
// the flags are parsed.
func NewRootCommand(loader *config.Loader, newAPI APIFactory) *RootCommand {
	root := &RootCommand{
		loader: loader,
		newAPI: newAPI,
	}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A punch clock for the working day",
		Long: `timelog (tl) records four markers per day and computes the time worked.

MARKERS:
  morning        arrival
  lunch-start    start of the lunch break
  lunch-end      end of the lunch break
  evening        departure

EXAMPLES:
  tl now morning                           # Record arrival at the current time
  tl set lunch-start 12:30                 # Record a marker for today
  tl set evening 17:45 --date yesterday    # Fix a marker of a past day
  tl show                                  # Today's markers and total
  tl week                                  # Totals from Monday up to today
  tl export --format yaml > worklog.yaml   # Export every saved day

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Database Configuration:
    TL_DB_DRIVER                           Storage backend, sqlite or buntdb (default: sqlite)
    TL_DB_DIR                              Database directory (default: ~/.timelog)
    TL_DB_FILENAME                         Database filename (default: timelog.db or timelog.buntdb)
    TL_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    TL_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)

  Validation Configuration:
    TL_VALIDATION_ALLOW_FUTURE_DAYS        Accept dates after today (default: false)
    TL_VALIDATION_MAX_RANGE_DAYS           Longest --from/--to range (default: 366)

  Display Configuration:
    TL_DISPLAY_FORMAT                      table, markdown or csv (default: table)
    TL_DISPLAY_COLOR                       Highlight incoherent markers (default: true)
    TL_DISPLAY_SHOW_DEFAULTS               Show default times of unset markers (default: true)

  Application Configuration:
    TL_APP_TIMEOUT                         Application timeout (default: 60s)
    TL_APP_VERBOSE                         Enable verbose output (default: false)
    TL_DEBUG                               Print debug traces

  Command Configuration:
    TL_EXPORT_DEFAULT_FORMAT               Default export format (default: csv)

DATES:
  YYYY-MM-DD, today or yesterday. Commands default to today.

EXIT STATUS:
  0 success, 1 other failure, 2 invalid input, 3 markers out of order,
  4 day not found, 5 storage failure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.teardown()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when the command fails.
	if closeErr := r.teardown(); err == nil {
		err = closeErr
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-driver", "", "Storage backend, sqlite or buntdb (overrides TL_DB_DRIVER)")
	flags.String("db-dir", "", "Database directory (overrides TL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TL_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TL_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TL_DB_WRITE_TIMEOUT)")

	// Validation configuration
	flags.Bool("allow-future", false, "Accept dates after today (overrides TL_VALIDATION_ALLOW_FUTURE_DAYS)")

	// Display configuration
	flags.String("display-format", "", "Display format, table, markdown or csv (overrides TL_DISPLAY_FORMAT)")
	flags.Bool("color", true, "Highlight incoherent markers (overrides TL_DISPLAY_COLOR)")
	flags.Bool("show-defaults", true, "Show default times of unset markers (overrides TL_DISPLAY_SHOW_DEFAULTS)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TL_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TL_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	showCmd := &cobra.Command{
		Use:   "show [DATE]",
		Short: "Show the markers and total of a day",
		Long: `Show the four markers of a day and the time worked.

Unset markers show their default time in parentheses. When the markers are
not in chronological order, the two offending markers are highlighted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewShowCommand(r.app), args)
		},
	}

	var setDate string
	setCmd := &cobra.Command{
		Use:   "set MARKER HH:MM",
		Short: "Record a marker",
		Long: `Record a marker at the given time, replacing any previous value.

The day is refused when its markers would no longer be in chronological order.

Examples:
  tl set morning 8:15
  tl set lunch-end 13:45 --date 2016-10-31`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewSetCommand(r.app)
			handler.Date = setDate
			return r.run(cmd, handler, args)
		},
	}
	setCmd.Flags().StringVarP(&setDate, "date", "d", "", "Day to change (default: today)")

	nowCmd := &cobra.Command{
		Use:   "now MARKER",
		Short: "Record a marker at the current time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewNowCommand(r.app), args)
		},
	}

	var unsetDate string
	unsetCmd := &cobra.Command{
		Use:   "unset MARKER",
		Short: "Remove a marker",
		Long:  "Remove a marker from a day. Removing the last marker deletes the day.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewUnsetCommand(r.app)
			handler.Date = unsetDate
			return r.run(cmd, handler, args)
		},
	}
	unsetCmd.Flags().StringVarP(&unsetDate, "date", "d", "", "Day to change (default: today)")

	deleteCmd := &cobra.Command{
		Use:   "delete DATE",
		Short: "Delete every marker of a day",
		Long:  "Delete every marker of a day. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewDeleteCommand(r.app), args)
		},
	}

	weekCmd := &cobra.Command{
		Use:   "week [DATE]",
		Short: "Show the totals of the week",
		Long:  "Show the total of every day from Monday up to the given day, and the week total.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewWeekCommand(r.app), args)
		},
	}

	var listFrom, listTo string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the saved days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewListCommand(r.app)
			handler.From, handler.To = listFrom, listTo
			return r.run(cmd, handler, args)
		},
	}
	listCmd.Flags().StringVar(&listFrom, "from", "", "First day to list")
	listCmd.Flags().StringVar(&listTo, "to", "", "Last day to list")

	var exportFormat, exportFrom, exportTo string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the saved days",
		Long: `Export the saved days as csv, json or yaml.

Example:
  tl export --format json --from 2016-10-31 > worklog.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewExportCommand(r.app)
			if exportFormat != "" {
				handler.Format = exportFormat
			}
			handler.From, handler.To = exportFrom, exportTo
			return r.run(cmd, handler, args)
		},
	}
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "csv, json or yaml (overrides TL_EXPORT_DEFAULT_FORMAT)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First day to export")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last day to export")

	r.cmd.AddCommand(
		showCmd,
		setCmd,
		nowCmd,
		unsetCmd,
		deleteCmd,
		weekCmd,
		listCmd,
		exportCmd,
	)
}

// run executes handler under the application timeout.
func (r *RootCommand) run(cmd *cobra.Command, handler Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	logger := logging.FromContext(ctx)
	logger.Debug("running command", "command", cmd.Name(), "args", args)

	err := handler.Execute(ctx, args)
	if err != nil && errors.ShouldLogError(err) {
		logger.Error("command failed", errorAttrs(cmd.Name(), err)...)
	}
	return err
}

// errorAttrs describes err for the log, with the day it concerns when known.
func errorAttrs(command string, err error) []any {
	attrs := []any{"command", command, "code", errors.GetErrorCode(err)}
	if appErr, ok := errors.AsAppError(err); ok {
		if day, ok := appErr.GetContext("day"); ok {
			attrs = append(attrs, "day", day)
		}
	}
	return append(attrs, "err", err)
}

// setup loads the configuration, applies the flags and opens the storage.
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if r.loader == nil || r.newAPI == nil {
		return fmt.Errorf("configuration not initialized")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := r.loader.LoadWithOverrides(ctx, r.getOverridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg

	logger := logging.New(cmd.ErrOrStderr(), "tl", cfg.Application.Verbose)
	ctx = logging.IntoContext(ctx, logger)
	cmd.SetContext(ctx)

	businessAPI, closeStore, err := r.newAPI(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	r.closeStore = closeStore
	logger.Debug("storage opened", "driver", cfg.Database.Driver, "path", cfg.GetDatabasePath())

	r.app = NewApp(businessAPI, cfg, cmd.OutOrStdout())
	return nil
}

func (r *RootCommand) teardown() error {
	if r.closeStore == nil {
		return nil
	}
	closeStore := r.closeStore
	r.closeStore = nil
	return closeStore()
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getOverridesFromFlags collects the global flags set on the command line.
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	// Database configuration
	if flags.Changed("db-driver") {
		v, _ := flags.GetString("db-driver")
		overrides.DBDriver = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}

	// Validation configuration
	if flags.Changed("allow-future") {
		v, _ := flags.GetBool("allow-future")
		overrides.AllowFutureDays = &v
	}

	// Display configuration
	if flags.Changed("display-format") {
		v, _ := flags.GetString("display-format")
		overrides.DisplayFormat = &v
	}
	if flags.Changed("color") {
		v, _ := flags.GetBool("color")
		overrides.Color = &v
	}
	if flags.Changed("show-defaults") {
		v, _ := flags.GetBool("show-defaults")
		overrides.ShowDefaults = &v
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
