// Package harness provides a conformance testing framework for the
// tracepoint engine.
//
// A scenario runs an entire scripted session against the real engine:
// tracepoints are created through the normal create+add path, hits are
// dispatched through the scripted host's serialized callback path, and
// the emitted log lines are captured from the real sink. Nothing is
// manufactured - a scenario fails when the engine misbehaves.
package harness

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dlogdev/dlog/internal/engine"
	"github.com/dlogdev/dlog/internal/host"
	"github.com/dlogdev/dlog/internal/sink"
)

// Result is the outcome of one scenario run.
type Result struct {
	// Name is the scenario name.
	Name string

	// Passed reports whether every assertion held.
	Passed bool

	// Lines are the log lines emitted by the session, in order.
	Lines []string

	// Hits is the total number of dispatched hits.
	Hits int

	// Failures describes each failed assertion.
	Failures []string
}

// Run executes a scenario against a fresh engine and scripted host.
//
// Every hit's continue signal is asserted: a tracepoint returning
// anything but Continue is a failure regardless of the expected lines.
func Run(scenario *Scenario) (*Result, error) {
	h := host.NewScriptedHost()

	var captured bytes.Buffer
	snk := sink.New(&captured)
	if scenario.LogDestination != "" {
		if err := snk.Set(scenario.LogDestination); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
	}

	eng := engine.New(h, snk)

	for i, def := range scenario.Tracepoints {
		if _, err := eng.AddTracepoint(def.Location, def.Template, def.Expressions); err != nil {
			return nil, fmt.Errorf("scenario %q: tracepoint %d: %w", scenario.Name, i, err)
		}
	}

	result := &Result{Name: scenario.Name, Passed: true}

	for _, step := range scenario.Hits {
		for expr, value := range step.Vars {
			h.SetVar(step.Location, expr, value)
		}
		signals := h.Fire(step.Location)
		result.Hits += len(signals)
		for _, sig := range signals {
			if sig != host.Continue {
				result.Passed = false
				result.Failures = append(result.Failures,
					fmt.Sprintf("hit at %s did not signal continue", step.Location))
			}
		}
	}

	if captured.Len() > 0 {
		result.Lines = strings.Split(strings.TrimRight(captured.String(), "\n"), "\n")
	}

	if scenario.ExpectLines != nil {
		checkLines(scenario.ExpectLines, result)
	}

	return result, nil
}

// checkLines compares emitted lines against the expectation, in order.
func checkLines(expected []string, result *Result) {
	if len(expected) != len(result.Lines) {
		result.Passed = false
		result.Failures = append(result.Failures,
			fmt.Sprintf("expected %d line(s), got %d", len(expected), len(result.Lines)))
		return
	}
	for i, want := range expected {
		if result.Lines[i] != want {
			result.Passed = false
			result.Failures = append(result.Failures,
				fmt.Sprintf("line %d: expected %q, got %q", i, want, result.Lines[i]))
		}
	}
}
