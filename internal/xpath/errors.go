package xpath

import (
	"errors"
	"fmt"
)

// ErrInvalidState is the sentinel matched by every *InvalidStateError.
var ErrInvalidState = errors.New("invalid expression state")

// ErrUnsupportedLiteral is reported by RenderStrict when a literal contains
// both quote characters.
var ErrUnsupportedLiteral = errors.New("literal contains both ' and \"")

// InvalidStateError is returned when an operation cannot be applied in the
// builder's current state, e.g. navigating away while an "and"/"or" is
// still waiting for its right-hand condition.
type InvalidStateError struct {
	// Op is the builder operation that was rejected (e.g. "Child", "Union").
	Op string

	// Message describes why the state is invalid.
	Message string
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("xpath: %s: %s", e.Op, e.Message)
}

// Is reports whether target is ErrInvalidState, so callers can use errors.Is.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// IsInvalidState returns true if err is (or wraps) an *InvalidStateError.
func IsInvalidState(err error) bool {
	var se *InvalidStateError
	return errors.As(err, &se)
}

func danglingOperator(op string) *InvalidStateError {
	return &InvalidStateError{
		Op:      op,
		Message: "cannot add an [and,or] operator without another condition next to it",
	}
}
