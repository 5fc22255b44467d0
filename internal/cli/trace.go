package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dlogdev/dlog/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Journal  string
	Location string // optional - filter to one location spec
	Limit    int
}

// TraceHit represents a single journaled hit in the trace output.
type TraceHit struct {
	Seq      int64  `json:"seq"`
	LoggedAt string `json:"logged_at"`
	Location string `json:"location"`
	Line     string `json:"line"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalHits int64 `json:"total_hits"`
	Locations int   `json:"locations"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Hits       []TraceHit              `json:"hits"`
	ByLocation []journal.LocationCount `json:"by_location"`
	Stats      TraceStats              `json:"stats"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Query the hit journal of a past session",
		Long: `Query the SQLite hit journal written by a session started with
--journal.

Shows journaled hits in emission order along with per-location counts.

Examples:
  dlog trace --db ./hits.db
  dlog trace --db ./hits.db --location main.c:42
  dlog trace --db ./hits.db --limit 20 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "db", "", "path to SQLite hit journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Location, "location", "", "filter to one location spec")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of hits to show (0 = all)")

	return cmd
}

func runTraceQuery(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	jnl, err := journal.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer jnl.Close()

	hits, err := jnl.ReadHits(ctx, opts.Location, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read hits", err)
	}

	total, err := jnl.CountHits(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count hits", err)
	}

	byLocation, err := jnl.CountByLocation(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count hits", err)
	}

	result := TraceResult{
		Hits:       make([]TraceHit, 0, len(hits)),
		ByLocation: byLocation,
		Stats: TraceStats{
			TotalHits: total,
			Locations: len(byLocation),
		},
	}
	for _, hit := range hits {
		result.Hits = append(result.Hits, TraceHit{
			Seq:      hit.Seq,
			LoggedAt: hit.LoggedAt.Format(time.RFC3339Nano),
			Location: hit.Location,
			Line:     hit.Line,
		})
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: result})
	}

	return outputTraceText(cmd, result)
}

// outputTraceText outputs the trace result as text.
func outputTraceText(cmd *cobra.Command, result TraceResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "=== Hits ===")
	if len(result.Hits) == 0 {
		fmt.Fprintln(w, "  (no hits)")
	} else {
		for _, hit := range result.Hits {
			fmt.Fprintf(w, "  [%d] %s %s\n", hit.Seq, hit.Location, hit.Line)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Locations ===")
	if len(result.ByLocation) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		for _, lc := range result.ByLocation {
			fmt.Fprintf(w, "  %s: %d hit(s)\n", lc.Location, lc.Hits)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Total Hits: %d\n", result.Stats.TotalHits)
	fmt.Fprintf(w, "  Locations:  %d\n", result.Stats.Locations)

	return nil
}
