package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted debug session: tracepoints to install,
// hits to simulate, and the log lines the session is expected to emit.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// LogDestination overrides the sink destination. Defaults to
	// "stdout", which the harness captures in-memory. "none" exercises
	// the disabled sink.
	LogDestination string `yaml:"log_destination,omitempty"`

	// Tracepoints are installed in order before any hit.
	Tracepoints []TracepointDef `yaml:"tracepoints"`

	// Hits are simulated in order.
	Hits []HitStep `yaml:"hits"`

	// ExpectLines are the log lines the session must emit, in order.
	// A nil value skips line assertions (golden comparison still runs).
	ExpectLines []string `yaml:"expect_lines,omitempty"`
}

// TracepointDef is one tracepoint definition.
type TracepointDef struct {
	Location    string   `yaml:"location"`
	Template    string   `yaml:"template"`
	Expressions []string `yaml:"expressions,omitempty"`
}

// HitStep simulates the debuggee reaching a location. Vars script the
// expression values visible in the stopped frame; they persist across
// subsequent hits at the same location until overwritten.
type HitStep struct {
	Location string            `yaml:"location"`
	Vars     map[string]string `yaml:"vars,omitempty"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %q: %w", path, err)
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", path, err)
	}
	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %q has no name", path)
	}
	return &scenario, nil
}
