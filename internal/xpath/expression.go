package xpath

import (
	"fmt"
	"strings"
)

// Boolean operator tokens written between two conditions.
const (
	opAnd = " and "
	opOr  = " or "
)

// Expression is a mutable XPath builder. Methods that add conditions return
// the same *Expression so calls can be chained; navigation methods return
// an error as well because they can be rejected.
//
// The zero value is not usable; create expressions with New or one of the
// From* helpers.
type Expression struct {
	axis  Axis
	buf   strings.Builder
	state state

	// unsupported holds the first literal that could not be quoted,
	// including literals of embedded target expressions.
	unsupported string

	// danglingTarget names the first structural predicate whose target
	// expression was embedded with a pending operator.
	danglingTarget string
}

// New creates an expression whose root context is tag, reached through axis.
func New(tag string, axis Axis) *Expression {
	e := &Expression{axis: axis, state: stateNode}
	e.buf.WriteString(tag)
	return e
}

// From creates an expression that searches the whole document for tag.
func From(tag string) *Expression {
	return New(tag, AxisGlobal)
}

// FromAny creates an expression that matches any element in the document.
func FromAny() *Expression {
	return New("*", AxisGlobal)
}

// FromChild creates an expression for direct children named tag.
func FromChild(tag string) *Expression {
	return New(tag, AxisChild)
}

// FromDescendant creates an expression for descendants named tag.
func FromDescendant(tag string) *Expression {
	return New(tag, AxisDescendant)
}

// Must returns e or panics if err is non-nil.
// Use only in tests or when the expression is known to be valid.
func Must(e *Expression, err error) *Expression {
	if err != nil {
		panic(err)
	}
	return e
}

// Axis returns the root axis of the expression.
func (e *Expression) Axis() Axis {
	return e.axis
}

// Pending reports whether an "and"/"or" is waiting for a condition.
func (e *Expression) Pending() bool {
	return e.state == stateOperator
}

// Clone returns an independent copy of e. Mutating the copy leaves e unchanged.
func (e *Expression) Clone() *Expression {
	c := &Expression{
		axis:           e.axis,
		state:          e.state,
		unsupported:    e.unsupported,
		danglingTarget: e.danglingTarget,
	}
	c.buf.WriteString(e.buf.String())
	return c
}

// addCondition writes one complete condition into the open context.
func (e *Expression) addCondition(cond string) *Expression {
	switch e.state {
	case stateNode:
		e.buf.WriteByte('[')
	case statePredicate:
		e.buf.WriteString(opAnd)
	case stateOperator:
		// the pending operator already joins the two conditions
	}
	e.buf.WriteString(cond)
	e.state = statePredicate
	return e
}

// And joins the previous condition with the next one using "and".
// It is a no-op when no condition is open or an operator is already pending.
func (e *Expression) And() *Expression {
	return e.combine(opAnd)
}

// Or joins the previous condition with the next one using "or".
// It is a no-op when no condition is open or an operator is already pending.
func (e *Expression) Or() *Expression {
	return e.combine(opOr)
}

func (e *Expression) combine(op string) *Expression {
	switch e.state {
	case statePredicate:
		e.buf.WriteString(op)
		e.state = stateOperator
	case stateNode, stateOperator:
	}
	return e
}

// closeContext ends the current context so a new step can follow.
func (e *Expression) closeContext(op string) error {
	switch e.state {
	case stateOperator:
		return danglingOperator(op)
	case statePredicate:
		e.buf.WriteByte(']')
	case stateNode:
	}
	e.state = stateNode
	return nil
}

// navigate closes the current context and opens step as the new one.
func (e *Expression) navigate(op, step string) (*Expression, error) {
	if err := e.closeContext(op); err != nil {
		return e, err
	}
	e.buf.WriteByte('/')
	e.buf.WriteString(step)
	return e, nil
}

// partial returns the buffer with any open predicate closed.
func (e *Expression) partial() string {
	if e.state.predicateOpen() {
		return e.buf.String() + "]"
	}
	return e.buf.String()
}

// Render returns the complete expression, closing an open predicate.
// The builder is not modified and may keep being extended.
//
// Render does not reject a pending operator; the result then ends in
// " and ]" or " or ]". Use RenderStrict to turn that into an error.
func (e *Expression) Render() string {
	return string(e.axis) + e.partial()
}

// String implements fmt.Stringer and is equivalent to Render.
func (e *Expression) String() string {
	return e.Render()
}

// RenderIndexed selects the n-th (1-based) node matched by the expression:
// (expr)[n].
func (e *Expression) RenderIndexed(n int) string {
	return fmt.Sprintf("(%s)[%d]", e.Render(), n)
}

// RenderPartial returns the expression without its leading axis, for use as
// the operand of a structural predicate or navigation step.
func (e *Expression) RenderPartial() string {
	return e.partial()
}

// RenderStrict is Render with the silent hazards turned into errors: a
// pending operator, here or in an embedded target expression, yields an
// *InvalidStateError and a literal containing both quote characters yields
// ErrUnsupportedLiteral.
func (e *Expression) RenderStrict() (string, error) {
	if e.state == stateOperator {
		return "", danglingOperator("Render")
	}
	if e.danglingTarget != "" {
		return "", &InvalidStateError{
			Op:      e.danglingTarget,
			Message: "target expression has a dangling [and,or] operator",
		}
	}
	if e.unsupported != "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLiteral, e.unsupported)
	}
	return e.Render(), nil
}

// Union renders e and other joined by the XPath union operator "|".
// Both expressions are finalized independently.
func (e *Expression) Union(other *Expression) (string, error) {
	if e.state == stateOperator {
		return "", danglingOperator("Union")
	}
	if other.state == stateOperator {
		return "", &InvalidStateError{
			Op:      "Union",
			Message: "right-hand expression has a dangling [and,or] operator",
		}
	}
	return e.Render() + " | " + other.Render(), nil
}
