package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dlogdev/dlog/internal/harness"
)

// ReplayResult holds the replay command output.
type ReplayResult struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Hits     int      `json:"hits"`
	Lines    []string `json:"lines"`
	Failures []string `json:"failures,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Run a scripted session scenario",
		Long: `Run a scripted session scenario through the tracepoint engine.

The scenario file defines tracepoints to install, hits to simulate with
scripted frame variables, and optionally the log lines the session is
expected to emit. The emitted lines are printed; when expectations are
present the command fails if they are not met.

Examples:
  dlog replay ./scenarios/two-expressions.yaml
  dlog replay ./scenarios/disabled-sink.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, path string, cmd *cobra.Command) error {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	out := ReplayResult{
		Name:     result.Name,
		Passed:   result.Passed,
		Hits:     result.Hits,
		Lines:    result.Lines,
		Failures: result.Failures,
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(CLIResponse{Status: "ok", Data: out}); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Scenario: %s (%d hit(s))\n", out.Name, out.Hits)
		for _, line := range out.Lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
		if out.Passed {
			fmt.Fprintln(w, "PASS")
		} else {
			fmt.Fprintln(w, "FAIL")
			for _, failure := range out.Failures {
				fmt.Fprintf(w, "  %s\n", failure)
			}
		}
	}

	if !out.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %q failed", out.Name))
	}
	return nil
}
