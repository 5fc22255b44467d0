package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a result as the deterministic text compared against
// golden files: the scenario name, the hit count, and every emitted line
// in order.
func (r *Result) Transcript() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Name)
	fmt.Fprintf(&b, "hits: %d\n", r.Hits)
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "line: %s\n", line)
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its transcript against
// the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, result.Transcript())

	return result, nil
}
