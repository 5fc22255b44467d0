package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dlogdev/dlog/internal/console"
	"github.com/dlogdev/dlog/internal/engine"
	"github.com/dlogdev/dlog/internal/host"
	"github.com/dlogdev/dlog/internal/journal"
	"github.com/dlogdev/dlog/internal/sink"
)

// ConsoleOptions holds flags for the console command.
type ConsoleOptions struct {
	*RootOptions
	Log     string
	Journal string
}

// NewConsoleCommand creates the console command.
func NewConsoleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConsoleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Start an interactive tracepoint session",
		Long: `Start an interactive tracepoint session.

Commands are read one per line and dispatched against the tracepoint
engine: add-tracepoint, list-tracepoints, remove-tracepoint,
export-tracepoints, import-tracepoints, set-log-destination, and the
frame inspection utilities. Type "help" inside the session for the
full command table.

The session runs against the built-in scripted host: the fire and
set-var commands simulate the debuggee reaching a location.

Examples:
  dlog console
  dlog console --log ./session.log --journal ./hits.db
  dlog console --config ./dlog.toml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Log, "log", "", "log destination (path, stdout, or none)")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite hit journal")

	return cmd
}

func runConsole(opts *ConsoleOptions, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	// Flags override the config file
	dest := cfg.LogDestination
	if opts.Log != "" {
		dest = opts.Log
	}
	journalPath := cfg.JournalPath
	if opts.Journal != "" {
		journalPath = opts.Journal
	}

	snk := sink.New(cmd.OutOrStdout())
	if dest != "" && dest != sink.DestStdout {
		if err := snk.Set(dest); err != nil {
			return WrapExitError(ExitCommandError, "failed to set log destination", err)
		}
	}

	var engineOpts []engine.Option
	if journalPath != "" {
		slog.Info("opening hit journal", "path", journalPath)
		jnl, err := journal.Open(journalPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := jnl.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()

		// Resume seq numbering where the previous session stopped
		maxSeq, err := jnl.MaxSeq(context.Background())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		engineOpts = append(engineOpts,
			engine.WithJournal(jnl),
			engine.WithClock(engine.NewClockAt(maxSeq)),
		)
	}

	eng := engine.New(host.NewScriptedHost(), snk, engineOpts...)

	slog.Info("session starting", "log_destination", snk.Destination(), "journal", journalPath)
	con := console.New(eng, cfg, cmd.OutOrStdout())
	if err := con.Run(cmd.InOrStdin()); err != nil {
		return WrapExitError(ExitFailure, "console error", err)
	}

	slog.Info("session ended")
	return nil
}
