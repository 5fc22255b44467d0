package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dlogdev/dlog/internal/engine"
	"github.com/dlogdev/dlog/internal/persist"
)

// ValidationIssue describes one invalid definition line.
type ValidationIssue struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Definitions int               `json:"definitions"`
	Issues      []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <defs-file>",
		Short: "Validate an exported definitions file",
		Long: `Validate an exported tracepoint definitions file without creating
any tracepoints.

Each line is checked against the canonical grammar
(addlog <location> "<template>" "<expression>"...) and the template's
placeholder count is checked against its expression count. All lines
are checked; the command reports every issue rather than stopping at
the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open definitions file", err)
	}
	defer f.Close()

	result := ValidationResult{Valid: true}
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		def, parseErr := persist.ParseDefinition(line)
		if parseErr != nil {
			result.Valid = false
			result.Issues = append(result.Issues, ValidationIssue{
				Line:    lineNo,
				Message: parseErr.Error(),
			})
			continue
		}

		result.Definitions++
		formatter.VerboseLog("line %d: %s (%d expression(s))", lineNo, def.Location, len(def.Expressions))

		if placeholders := engine.CountPlaceholders(def.Template); placeholders != len(def.Expressions) {
			result.Valid = false
			result.Issues = append(result.Issues, ValidationIssue{
				Line: lineNo,
				Message: fmt.Sprintf("template has %d placeholder(s) but %d expression(s) given",
					placeholders, len(def.Expressions)),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read definitions file", err)
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		if result.Valid {
			fmt.Fprintf(w, "OK: %d definition(s)\n", result.Definitions)
		} else {
			for _, issue := range result.Issues {
				fmt.Fprintf(w, "%s:%d: %s\n", path, issue.Line, issue.Message)
			}
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid line(s)", len(result.Issues)))
	}
	return nil
}
