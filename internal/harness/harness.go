package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/roach88/xpathq/internal/locator"
	"github.com/roach88/xpathq/internal/xpath"
)

// Harness checks cases against a loaded set of definitions.
type Harness struct {
	definitions map[string]locator.Definition
	documents   map[string]*html.Node
	logger      *slog.Logger
}

// Run executes a scenario with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger executes a scenario and returns the result.
//
// Definition directories are loaded fail-fast: a directory that does not
// load is an error of the scenario, not a failed case. Compile errors are
// reported per case so expect_error cases can assert on them.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	h := &Harness{
		definitions: make(map[string]locator.Definition),
		documents:   make(map[string]*html.Node),
		logger:      logger,
	}

	for _, dir := range scenario.Definitions {
		loaded, errs := locator.LoadDir(dir, locator.LoadModeFailFast)
		if len(errs) > 0 {
			return nil, fmt.Errorf("load definitions %s: %w", dir, errs[0])
		}
		for _, def := range loaded.Definitions {
			if _, dup := h.definitions[def.Name]; dup {
				return nil, fmt.Errorf("load definitions %s: locator %q defined twice", dir, def.Name)
			}
			h.definitions[def.Name] = def
		}
		logger.Debug("definitions loaded", "dir", dir, "count", len(loaded.Definitions))
	}

	result := NewResult()
	for i, c := range scenario.Cases {
		outcome := h.runCase(c)
		h.logger.Info("case finished",
			"case", i,
			"locator", c.Locator,
			"passed", outcome.Passed,
			"expression", outcome.Expression,
		)
		result.Add(outcome)
	}
	return result, nil
}

func (h *Harness) runCase(c Case) Outcome {
	out := Outcome{Locator: c.Locator}

	def, ok := h.definitions[c.Locator]
	if !ok {
		return out.fail("locator %q is not defined", c.Locator)
	}

	compiled, err := locator.Compile(def)
	if compiled != nil {
		out.Expression = compiled.Expression
	}
	if err == nil && c.Strict {
		_, err = compiled.Strict()
	}

	if c.ExpectError != "" {
		if err == nil {
			return out.fail("expected %s error, got %s", c.ExpectError, out.Expression)
		}
		if kind := errorKind(err); kind != c.ExpectError {
			return out.fail("expected %s error, got %s: %v", c.ExpectError, kind, err)
		}
		out.Passed = true
		return out
	}
	if err != nil {
		return out.fail("%v", err)
	}

	if c.Expect != "" && compiled.Expression != c.Expect {
		return out.fail("expression mismatch:\n  want %s\n  got  %s", c.Expect, compiled.Expression)
	}

	if c.HTML != "" {
		return h.evaluate(out, c)
	}

	out.Passed = true
	return out
}

// evaluate runs the expression against the case fixture.
func (h *Harness) evaluate(out Outcome, c Case) Outcome {
	doc, err := h.document(c.HTML)
	if err != nil {
		return out.fail("%v", err)
	}

	nodes, err := htmlquery.QueryAll(doc, out.Expression)
	if err != nil {
		return out.fail("evaluate %s: %v", out.Expression, err)
	}
	n := len(nodes)
	out.Matches = &n

	if c.Matches != nil && n != *c.Matches {
		return out.fail("expected %d matches, got %d", *c.Matches, n)
	}
	if c.FirstText != nil {
		if n == 0 {
			return out.fail("expected first text %q, got no matches", *c.FirstText)
		}
		if got := strings.TrimSpace(htmlquery.InnerText(nodes[0])); got != *c.FirstText {
			return out.fail("expected first text %q, got %q", *c.FirstText, got)
		}
	}

	out.Passed = true
	return out
}

// document parses a fixture once per run.
func (h *Harness) document(path string) (*html.Node, error) {
	if doc, ok := h.documents[path]; ok {
		return doc, nil
	}
	doc, err := htmlquery.LoadDoc(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}
	h.documents[path] = doc
	return doc, nil
}

func (o Outcome) fail(format string, args ...any) Outcome {
	o.Passed = false
	o.Message = fmt.Sprintf(format, args...)
	return o
}

// errorKind classifies a compile error into one of the Error* kinds.
func errorKind(err error) string {
	switch {
	case xpath.IsInvalidState(err):
		return ErrorInvalidState
	case errors.Is(err, xpath.ErrUnsupportedLiteral):
		return ErrorUnsupportedLiteral
	default:
		return ErrorCompile
	}
}
