package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Passed, strings.Join(result.Failures, "; "))
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadScenarioRequiresName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("description: unnamed\n"), 0o666))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestLoadScenarioMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [\n"), 0o666))

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestRunReportsLineMismatch(t *testing.T) {
	scenario := &Scenario{
		Name: "mismatch",
		Tracepoints: []TracepointDef{
			{Location: "main.c:42", Template: "x={}", Expressions: []string{"x"}},
		},
		Hits:        []HitStep{{Location: "main.c:42", Vars: map[string]string{"x": "3"}}},
		ExpectLines: []string{"x=999"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], `expected "x=999"`)
}

func TestRunReportsLineCountMismatch(t *testing.T) {
	scenario := &Scenario{
		Name: "count-mismatch",
		Tracepoints: []TracepointDef{
			{Location: "main.c:42", Template: "hit"},
		},
		Hits:        []HitStep{{Location: "main.c:42"}},
		ExpectLines: []string{"hit", "hit"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "expected 2 line(s), got 1")
}

func TestRunNilExpectLinesSkipsAssertions(t *testing.T) {
	scenario := &Scenario{
		Name: "no-expectations",
		Tracepoints: []TracepointDef{
			{Location: "main.c:42", Template: "hit"},
		},
		Hits: []HitStep{{Location: "main.c:42"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, []string{"hit"}, result.Lines)
}

func TestRunFailsOnBadTracepoint(t *testing.T) {
	scenario := &Scenario{
		Name: "bad-arity",
		Tracepoints: []TracepointDef{
			{Location: "main.c:42", Template: "x={} y={}", Expressions: []string{"x"}},
		},
	}

	_, err := Run(scenario)
	assert.Error(t, err)
}

func TestRunFailsOnBadDestination(t *testing.T) {
	scenario := &Scenario{
		Name:           "bad-destination",
		LogDestination: filepath.Join(string(os.PathSeparator), "no-such-dir-anywhere", "out.log"),
	}

	_, err := Run(scenario)
	assert.Error(t, err)
}

func TestTranscriptFormat(t *testing.T) {
	result := &Result{Name: "demo", Hits: 2, Lines: []string{"a", "b"}}
	assert.Equal(t, "scenario: demo\nhits: 2\nline: a\nline: b\n", string(result.Transcript()))
}
