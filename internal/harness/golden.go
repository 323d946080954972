package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/storytime/internal/story"
)

// GoldenDir is where RunWithGolden keeps its fixtures.
const GoldenDir = "testdata/golden"

// Snapshot returns the canonical JSON form of a scenario run: the trace
// and the final state. It is what golden files hold.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, event := range result.Trace {
		eventMap := map[string]any{
			"seq":     event.Seq,
			"action":  event.Action,
			"outcome": event.Outcome,
			"view":    event.View,
			"path":    event.Path,
		}
		if event.Args != nil {
			eventMap["args"] = event.Args
		}
		trace[i] = eventMap
	}

	snapshot := map[string]any{
		"scenario_name": scenario.Name,
		"trace":         trace,
		"final": map[string]any{
			"titles": stringsValue(result.Final.Titles),
			"menu":   stringsValue(result.Final.Menu),
			"path":   result.Final.Path,
			"writes": result.Final.Writes,
		},
	}
	if scenario.Session != "" {
		snapshot["session"] = scenario.Session
	}
	return story.MarshalCanonicalValue(snapshot)
}

func stringsValue(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass and Errors.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the scenario's golden
// file without re-running it.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
