package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a set of locator cases checked against one or more
// definition directories.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Definitions lists directories of CUE locator definitions.
	// Paths are relative to the scenario file location.
	Definitions []string `yaml:"definitions"`

	// Cases are checked in order.
	Cases []Case `yaml:"cases"`
}

// Case checks a single locator.
type Case struct {
	// Locator is the definition name.
	Locator string `yaml:"locator"`

	// Strict renders with RenderStrict, so dangling operators and
	// unquotable literals become errors.
	Strict bool `yaml:"strict,omitempty"`

	// Expect is the exact expected expression.
	Expect string `yaml:"expect,omitempty"`

	// ExpectError is the expected error kind, see the Error* constants.
	ExpectError string `yaml:"expect_error,omitempty"`

	// HTML is a fixture to evaluate the expression against.
	// The path is relative to the scenario file location.
	HTML string `yaml:"html,omitempty"`

	// Matches is the expected number of selected nodes (requires HTML).
	Matches *int `yaml:"matches,omitempty"`

	// FirstText is the expected inner text of the first selected node
	// (requires HTML).
	FirstText *string `yaml:"first_text,omitempty"`
}

// Expected error kinds.
const (
	ErrorInvalidState       = "invalid_state"
	ErrorUnsupportedLiteral = "unsupported_literal"
	ErrorCompile            = "compile"
)

// LoadScenario reads and parses a scenario YAML file, resolving relative
// paths against the directory that contains it.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving definition and fixture paths relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "case:" vs "cases:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, dir := range scenario.Definitions {
		scenario.Definitions[i] = resolve(basePath, dir)
	}
	for i := range scenario.Cases {
		if scenario.Cases[i].HTML != "" {
			scenario.Cases[i].HTML = resolve(basePath, scenario.Cases[i].HTML)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Definitions) == 0 {
		return fmt.Errorf("definitions list is required and must be non-empty")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for _, dir := range s.Definitions {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("definitions directory not found: %s", dir)
		}
	}

	for i := range s.Cases {
		if err := validateCase(i, &s.Cases[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateCase checks that a case names a locator and expects something.
func validateCase(index int, c *Case) error {
	if c.Locator == "" {
		return fmt.Errorf("cases[%d]: locator is required", index)
	}

	switch c.ExpectError {
	case "", ErrorInvalidState, ErrorUnsupportedLiteral, ErrorCompile:
	default:
		return fmt.Errorf("cases[%d]: unknown expect_error %q", index, c.ExpectError)
	}

	if c.ExpectError != "" && (c.Expect != "" || c.HTML != "") {
		return fmt.Errorf("cases[%d]: expect_error cannot be combined with expect or html", index)
	}

	if c.HTML == "" && (c.Matches != nil || c.FirstText != nil) {
		return fmt.Errorf("cases[%d]: matches and first_text require html", index)
	}
	if c.HTML != "" {
		if c.Matches == nil && c.FirstText == nil {
			return fmt.Errorf("cases[%d]: html requires matches or first_text", index)
		}
		if c.Matches != nil && *c.Matches < 0 {
			return fmt.Errorf("cases[%d]: matches must be non-negative", index)
		}
		if _, err := os.Stat(c.HTML); os.IsNotExist(err) {
			return fmt.Errorf("cases[%d]: html fixture not found: %s", index, c.HTML)
		}
	}

	if c.Expect == "" && c.ExpectError == "" && c.HTML == "" {
		return fmt.Errorf("cases[%d]: one of expect, expect_error or html is required", index)
	}

	return nil
}
