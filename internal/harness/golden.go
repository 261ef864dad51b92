package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/xpathq/internal/canon"
)

// snapshot converts a result to a map for canonical JSON serialization.
// Messages are left out so golden files only change when behavior does.
func snapshot(name string, result *Result) map[string]any {
	outcomes := make([]any, len(result.Outcomes))
	for i, o := range result.Outcomes {
		m := map[string]any{
			"locator": o.Locator,
			"passed":  o.Passed,
		}
		if o.Expression != "" {
			m["expression"] = o.Expression
		}
		if o.Matches != nil {
			m["matches"] = *o.Matches
		}
		outcomes[i] = m
	}
	return map[string]any{
		"scenario_name": name,
		"outcomes":      outcomes,
	}
}

// RunWithGolden executes a scenario and compares the outcomes against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if outcomes don't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := canon.Marshal(snapshot(name, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
