package locator

import (
	"fmt"

	"cuelang.org/go/cue"
)

// CompileCUE parses a CUE value into a Definition. The definition name is
// taken from the last path selector, so callers pass the field itself:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`locator: rows: { from: "tr" }`)
//	def, err := CompileCUE(v.LookupPath(cue.ParsePath("locator.rows")))
func CompileCUE(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	var name string
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		name = labels[len(labels)-1].String()
	}

	def, err := parseDefinition(v, name)
	if err != nil {
		return nil, err
	}
	def.Name = name
	return def, nil
}

func parseDefinition(v cue.Value, path string) (*Definition, error) {
	def := &Definition{Pos: v.Pos()}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		label := iter.Label()
		val := iter.Value()
		switch label {
		case "from":
			def.From, err = stringField(val, path, label)
		case "axis":
			def.Axis, err = stringField(val, path, label)
		case "description":
			def.Description, err = stringField(val, path, label)
		case "index":
			def.Index, err = intField(val, path, label)
		case "steps":
			def.Steps, err = parseSteps(val, path+".steps")
		default:
			err = unknownField(val, path, label)
		}
		if err != nil {
			return nil, err
		}
	}

	return def, nil
}

func parseSteps(v cue.Value, path string) ([]Step, error) {
	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{Field: FieldType, Path: path, Message: "steps must be a list", Pos: v.Pos()}
	}

	var steps []Step
	for i := 0; iter.Next(); i++ {
		step, err := parseStep(iter.Value(), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(v cue.Value, path string) (Step, error) {
	step := Step{Pos: v.Pos()}

	// shorthand: a bare string is an argument-less op such as "and"
	if op, err := v.String(); err == nil {
		step.Op = op
		return step, nil
	}

	iter, err := v.Fields()
	if err != nil {
		return step, &CompileError{Field: FieldType, Path: path, Message: "step must be a string or struct", Pos: v.Pos()}
	}

	for iter.Next() {
		label := iter.Label()
		val := iter.Value()
		switch label {
		case "op":
			step.Op, err = stringField(val, path, label)
		case "name":
			step.Args.Name, err = stringField(val, path, label)
		case "value":
			step.Args.Value, err = scalarField(val, path)
		case "n":
			var n int
			n, err = intField(val, path, label)
			step.Args.N = &n
		case "namespace":
			step.Args.Namespace, err = boolField(val, path, label)
		case "ignore_case":
			step.Args.IgnoreCase, err = boolField(val, path, label)
		case "target":
			step.Args.Target, err = parseTarget(val, path+".target")
		default:
			err = unknownField(val, path, label)
		}
		if err != nil {
			return step, err
		}
	}

	if step.Op == "" {
		return step, &CompileError{Field: FieldOp, Path: path, Message: "op is required", Pos: v.Pos()}
	}
	return step, nil
}

// parseTarget accepts a tag name or a nested definition struct.
func parseTarget(v cue.Value, path string) (*Target, error) {
	if tag, err := v.String(); err == nil {
		return &Target{Tag: tag}, nil
	}
	if v.IncompleteKind() != cue.StructKind {
		return nil, &CompileError{Field: FieldType, Path: path, Message: "target must be a tag name or a definition", Pos: v.Pos()}
	}
	def, err := parseDefinition(v, path)
	if err != nil {
		return nil, err
	}
	return &Target{Definition: def}, nil
}

func scalarField(v cue.Value, path string) (any, error) {
	switch v.IncompleteKind() {
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return s, nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return n, nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return f, nil
	default:
		return nil, &CompileError{
			Field:   FieldType,
			Path:    path + ".value",
			Message: fmt.Sprintf("value must be a string or number, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

func stringField(v cue.Value, path, label string) (string, error) {
	s, err := v.String()
	if err != nil {
		return "", &CompileError{Field: FieldType, Path: path + "." + label, Message: label + " must be a string", Pos: v.Pos()}
	}
	return s, nil
}

func intField(v cue.Value, path, label string) (int, error) {
	n, err := v.Int64()
	if err != nil {
		return 0, &CompileError{Field: FieldType, Path: path + "." + label, Message: label + " must be an integer", Pos: v.Pos()}
	}
	return int(n), nil
}

func boolField(v cue.Value, path, label string) (bool, error) {
	b, err := v.Bool()
	if err != nil {
		return false, &CompileError{Field: FieldType, Path: path + "." + label, Message: label + " must be a bool", Pos: v.Pos()}
	}
	return b, nil
}

func unknownField(v cue.Value, path, label string) error {
	return &CompileError{Field: FieldUnknown, Path: path + "." + label, Message: fmt.Sprintf("unknown field %q", label), Pos: v.Pos()}
}
