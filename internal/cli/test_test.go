package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenariosDir = filepath.Join("..", "harness", "testdata", "scenarios")

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestTestCommandNonExistentPath(t *testing.T) {
	_, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario path not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyDirJSON(t *testing.T) {
	out, _, err := execute(NewTestCommand(&RootOptions{Format: "json"}), t.TempDir())
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data.Total)
}

func TestTestCommandPassingScenarios(t *testing.T) {
	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), scenariosDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ grades")
	assert.Contains(t, out, "✓ golden_smoke")
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
}

func TestTestCommandSingleFile(t *testing.T) {
	out, _, err := execute(NewTestCommand(&RootOptions{Format: "json"}), filepath.Join(scenariosDir, "golden_smoke.yaml"))
	require.NoError(t, err)

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "golden_smoke", resp.Data.Scenarios[0].Name)
	assert.Equal(t, 3, resp.Data.Scenarios[0].Cases)
	assert.True(t, resp.Data.Scenarios[0].Pass)
}

func TestTestCommandFilter(t *testing.T) {
	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "--filter", "golden*", scenariosDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ golden_smoke")
	assert.NotContains(t, out, "✓ grades")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandFailingScenario(t *testing.T) {
	definitions, err := filepath.Abs(filepath.Join("..", "harness", "testdata", "definitions"))
	require.NoError(t, err)

	dir := t.TempDir()
	scenario := `name: wrong_expectation
description: the rendered expression does not match
definitions:
  - ` + definitions + `
cases:
  - locator: grade_table
    expect: "//table[@id='marks']"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.yaml"), []byte(scenario), 0644))

	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_expectation")
	assert.Contains(t, out, "grade_table:")
	assert.Contains(t, out, "0 passed, 1 failed, 1 total")
}

func TestTestCommandMalformedScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typo.yaml"), []byte("name: typo\ncase: []\n"), 0644))

	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ typo")
	assert.Contains(t, out, "failed to parse YAML")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "c.txt", "sub/d.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0644))
	}

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = findScenarioFiles(dir, "[ab]")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = findScenarioFiles(dir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}
