package locator

import (
	"fmt"

	"cuelang.org/go/cue/token"

	"github.com/roach88/xpathq/internal/xpath"
)

// Compiled is a definition rendered to XPath.
type Compiled struct {
	Name       string
	Expression string
	Hash       string
	Index      int

	builder *xpath.Expression
}

// Pending reports whether the compiled builder ended with a dangling
// combinator. Expression then contains the dangling operator verbatim.
func (c *Compiled) Pending() bool {
	return c.builder.Pending()
}

// Strict returns Expression, or an error when the builder ended with a
// dangling combinator or holds a literal XPath 1.0 cannot quote.
func (c *Compiled) Strict() (string, error) {
	if _, err := c.builder.RenderStrict(); err != nil {
		return "", err
	}
	return c.Expression, nil
}

// Builder returns a copy of the underlying builder, for callers that want to
// keep refining the expression.
func (c *Compiled) Builder() *xpath.Expression {
	return c.builder.Clone()
}

// Compile replays def's steps on a fresh builder and renders the result.
// Builder errors come back as a *CompileError that unwraps to the
// *xpath.InvalidStateError.
func Compile(def Definition) (*Compiled, error) {
	if def.Name == "" {
		return nil, &CompileError{Field: FieldName, Message: "name is required", Pos: def.Pos}
	}
	if def.Index < 0 {
		return nil, &CompileError{
			Field:   FieldIndex,
			Path:    def.Name + ".index",
			Message: fmt.Sprintf("index must be positive, got %d", def.Index),
			Pos:     def.Pos,
		}
	}

	e, err := build(def, def.Name)
	if err != nil {
		return nil, err
	}

	hash, err := def.Hash()
	if err != nil {
		return nil, &CompileError{Field: FieldType, Path: def.Name, Message: err.Error(), Pos: def.Pos, Err: err}
	}

	expr := e.Render()
	if def.Index > 0 {
		expr = e.RenderIndexed(def.Index)
	}

	return &Compiled{
		Name:       def.Name,
		Expression: expr,
		Hash:       hash,
		Index:      def.Index,
		builder:    e,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(def Definition) *Compiled {
	c, err := Compile(def)
	if err != nil {
		panic(fmt.Sprintf("MustCompile: %v", err))
	}
	return c
}

func build(def Definition, path string) (*xpath.Expression, error) {
	axis, ok := xpath.ParseAxis(def.Axis)
	if !ok {
		return nil, &CompileError{
			Field:   FieldAxis,
			Path:    path + ".axis",
			Message: fmt.Sprintf("unknown axis %q", def.Axis),
			Pos:     def.Pos,
		}
	}
	from := def.From
	if from == "" {
		from = "*"
	}

	e := xpath.New(from, axis)
	for i, s := range def.Steps {
		stepPath := fmt.Sprintf("%s.steps[%d]", path, i)
		pos := s.Pos
		if !pos.IsValid() {
			pos = def.Pos
		}

		op, ok := operations[s.Op]
		if !ok {
			return nil, &CompileError{
				Field:   FieldOp,
				Path:    stepPath,
				Message: fmt.Sprintf("unknown operation %q", s.Op),
				Pos:     pos,
			}
		}
		if field, msg := op.checkArgs(s.Args); msg != "" {
			return nil, &CompileError{Field: field, Path: stepPath, Message: s.Op + ": " + msg, Pos: pos}
		}

		c := call{Args: s.Args}
		if s.Args.Target != nil {
			t, err := resolveTarget(*s.Args.Target, stepPath+".target", pos)
			if err != nil {
				return nil, err
			}
			c.target = t
		}

		next, err := op.apply(e, c)
		if err != nil {
			return nil, stateError(stepPath, pos, err)
		}
		e = next
	}
	return e, nil
}

func resolveTarget(t Target, path string, pos token.Pos) (xpath.Target, error) {
	if t.Definition != nil {
		// a target is embedded as a step, where (expr)[n] has no place
		if t.Definition.Index != 0 {
			return nil, &CompileError{
				Field:   FieldIndex,
				Path:    path + ".index",
				Message: "index is not allowed on a target definition",
				Pos:     pos,
			}
		}
		return build(*t.Definition, path)
	}
	switch t.Tag {
	case "":
		return nil, &CompileError{Field: FieldArgs, Path: path, Message: "target needs a tag or a definition", Pos: pos}
	case "*":
		return xpath.AnyTag(), nil
	default:
		return xpath.Tag(t.Tag), nil
	}
}
