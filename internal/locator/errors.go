package locator

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/xpathq/internal/xpath"
)

// Error categories carried in CompileError.Field.
const (
	FieldName    = "name"
	FieldOp      = "op"
	FieldArgs    = "args"
	FieldType    = "type"
	FieldUnknown = "field"
	FieldAxis    = "axis"
	FieldIndex   = "index"
	FieldState   = "state"
	FieldLiteral = "literal"
	FieldCUE     = "cue"
)

// CompileError reports a definition that cannot be compiled.
type CompileError struct {
	Field   string // error category, see the Field* constants
	Path    string // location inside the definition, e.g. grade_table.steps[2]
	Message string
	Pos     token.Pos
	Err     error
}

func (e *CompileError) Error() string {
	where := e.Path
	if where == "" {
		where = e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			where, e.Message)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// stateError wraps a builder error raised while replaying a step.
func stateError(path string, pos token.Pos, err error) *CompileError {
	field := FieldState
	if errors.Is(err, xpath.ErrUnsupportedLiteral) {
		field = FieldLiteral
	}
	msg := err.Error()
	var se *xpath.InvalidStateError
	if errors.As(err, &se) {
		msg = se.Op + ": " + se.Message
	}
	return &CompileError{Field: field, Path: path, Message: msg, Pos: pos, Err: err}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   FieldCUE,
			Message: first.Error(),
			Pos:     positions[0],
			Err:     err,
		}
	}

	return err
}
