package locator

import (
	"cuelang.org/go/cue/token"

	"github.com/roach88/xpathq/internal/canon"
	"github.com/roach88/xpathq/internal/xpath"
)

// Definition is a named, declarative locator.
type Definition struct {
	Name        string
	Description string
	From        string // tag name; empty means "*"
	Axis        string // global, child, descendant or a literal prefix; empty means global
	Steps       []Step
	Index       int // 1-based result index; 0 renders the plain expression

	Pos token.Pos
}

// Step is a single builder operation.
type Step struct {
	Op   string
	Args Args

	Pos token.Pos
}

// Args carries the arguments of a step. Which ones are required depends on
// the operation.
type Args struct {
	Name       string
	Value      any // string, int, int64 or float64
	Target     *Target
	N          *int
	Namespace  bool
	IgnoreCase bool
}

// Target is either a tag name or a nested definition.
type Target struct {
	Tag        string
	Definition *Definition
}

// Hash returns the content hash of the definition. The name and
// description are not part of the hash.
func (d Definition) Hash() (string, error) {
	return canon.HashValue(canon.DomainDefinition, d.canonical())
}

// Canonical returns the canonical JSON form that Hash is computed over.
func (d Definition) Canonical() ([]byte, error) {
	return canon.Marshal(d.canonical())
}

func (d Definition) canonical() map[string]any {
	from := d.From
	if from == "" {
		from = "*"
	}
	axis := d.Axis
	if a, ok := xpath.ParseAxis(d.Axis); ok {
		axis = string(a)
	}

	steps := make([]any, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, s.canonical())
	}

	m := map[string]any{
		"from":  from,
		"axis":  axis,
		"steps": steps,
	}
	if d.Index > 0 {
		m["index"] = d.Index
	}
	return m
}

func (s Step) canonical() map[string]any {
	m := map[string]any{"op": s.Op}
	a := s.Args
	if a.Name != "" {
		m["name"] = a.Name
	}
	switch v := a.Value.(type) {
	case nil:
	case int:
		m["value"] = int64(v)
	default:
		m["value"] = v
	}
	if a.Target != nil {
		if a.Target.Definition != nil {
			m["target"] = a.Target.Definition.canonical()
		} else {
			m["target"] = a.Target.Tag
		}
	}
	if a.N != nil {
		m["n"] = *a.N
	}
	if a.Namespace {
		m["namespace"] = true
	}
	if a.IgnoreCase {
		m["ignore_case"] = true
	}
	return m
}

// IntArg is a convenience for filling Args.N.
func IntArg(n int) *int { return &n }
