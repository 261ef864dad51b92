package xpath

import (
	"strings"
	"unicode"
)

// Target is the node test of a structural predicate or navigation step:
// a tag name, the * wildcard, or another *Expression rendered through
// RenderPartial.
//
// This is a sealed interface - only types in this package implement it.
type Target interface {
	step() string
}

type tagTarget string

func (t tagTarget) step() string { return string(t) }

// Tag returns a Target matching elements named name.
func Tag(name string) Target { return tagTarget(name) }

// AnyTag returns a Target matching any element.
func AnyTag() Target { return tagTarget("*") }

func (e *Expression) step() string { return e.RenderPartial() }

// XPath axis names used by structural predicates and navigation.
const (
	axisParent           = "parent"
	axisChild            = "child"
	axisAncestor         = "ancestor"
	axisDescendant       = "descendant"
	axisPrecedingSibling = "preceding-sibling"
	axisFollowingSibling = "following-sibling"
)

// embed records the hazards of a target expression so RenderStrict
// reports them on the outer builder.
func (e *Expression) embed(op string, t Target) {
	sub, ok := t.(*Expression)
	if !ok {
		return
	}
	if e.unsupported == "" {
		e.unsupported = sub.unsupported
	}
	if e.danglingTarget == "" {
		if sub.Pending() {
			e.danglingTarget = op
		} else {
			e.danglingTarget = sub.danglingTarget
		}
	}
}

func (e *Expression) relation(axis string, t Target, negated bool) *Expression {
	op := "Where" + axisName(axis)
	if negated {
		op = "WhereNot" + axisName(axis)
	}
	e.embed(op, t)
	cond := "./" + axis + "::" + t.step()
	if negated {
		cond = "not(" + cond + ")"
	}
	return e.addCondition(cond)
}

// WhereParent requires the context node's parent to match t.
func (e *Expression) WhereParent(t Target) *Expression {
	return e.relation(axisParent, t, false)
}

// WhereNotParent requires the parent not to match t.
func (e *Expression) WhereNotParent(t Target) *Expression {
	return e.relation(axisParent, t, true)
}

// WhereChild requires at least one child matching t.
func (e *Expression) WhereChild(t Target) *Expression {
	return e.relation(axisChild, t, false)
}

// WhereNotChild requires that no child matches t.
func (e *Expression) WhereNotChild(t Target) *Expression {
	return e.relation(axisChild, t, true)
}

// WhereAncestor requires at least one ancestor matching t.
func (e *Expression) WhereAncestor(t Target) *Expression {
	return e.relation(axisAncestor, t, false)
}

// WhereNotAncestor requires that no ancestor matches t.
func (e *Expression) WhereNotAncestor(t Target) *Expression {
	return e.relation(axisAncestor, t, true)
}

// WhereDescendant requires at least one descendant matching t.
func (e *Expression) WhereDescendant(t Target) *Expression {
	return e.relation(axisDescendant, t, false)
}

// WhereNotDescendant requires that no descendant matches t.
func (e *Expression) WhereNotDescendant(t Target) *Expression {
	return e.relation(axisDescendant, t, true)
}

// WherePrecedingSibling requires a preceding sibling matching t.
func (e *Expression) WherePrecedingSibling(t Target) *Expression {
	return e.relation(axisPrecedingSibling, t, false)
}

// WhereNotPrecedingSibling requires that no preceding sibling matches t.
func (e *Expression) WhereNotPrecedingSibling(t Target) *Expression {
	return e.relation(axisPrecedingSibling, t, true)
}

// WhereFollowingSibling requires a following sibling matching t.
func (e *Expression) WhereFollowingSibling(t Target) *Expression {
	return e.relation(axisFollowingSibling, t, false)
}

// WhereNotFollowingSibling requires that no following sibling matches t.
func (e *Expression) WhereNotFollowingSibling(t Target) *Expression {
	return e.relation(axisFollowingSibling, t, true)
}

// axisName turns an axis such as "preceding-sibling" into the
// PrecedingSibling spelling used in method names.
func axisName(axis string) string {
	var b strings.Builder
	upper := true
	for _, r := range axis {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// moveTo closes the current context and continues along axis to t.
func (e *Expression) moveTo(op, axis string, t Target) (*Expression, error) {
	if e.state == stateOperator {
		return e, danglingOperator(op)
	}
	if sub, ok := t.(*Expression); ok && sub.Pending() {
		return e, &InvalidStateError{
			Op:      op,
			Message: "target expression has a dangling [and,or] operator",
		}
	}
	if _, err := e.navigate(op, axis+"::"+t.step()); err != nil {
		return e, err
	}
	e.embed(op, t)
	return e, nil
}

// Parent moves to the parent of the current node: .../parent::t.
func (e *Expression) Parent(t Target) (*Expression, error) {
	return e.moveTo("Parent", axisParent, t)
}

// Child moves to the children of the current node: .../child::t.
func (e *Expression) Child(t Target) (*Expression, error) {
	return e.moveTo("Child", axisChild, t)
}

// Ancestor moves to the ancestors of the current node: .../ancestor::t.
func (e *Expression) Ancestor(t Target) (*Expression, error) {
	return e.moveTo("Ancestor", axisAncestor, t)
}

// Descendant moves to the descendants of the current node: .../descendant::t.
func (e *Expression) Descendant(t Target) (*Expression, error) {
	return e.moveTo("Descendant", axisDescendant, t)
}

// FollowingSibling moves to the following siblings: .../following-sibling::t.
func (e *Expression) FollowingSibling(t Target) (*Expression, error) {
	return e.moveTo("FollowingSibling", axisFollowingSibling, t)
}

// PrecedingSibling moves to the preceding siblings: .../preceding-sibling::t.
func (e *Expression) PrecedingSibling(t Target) (*Expression, error) {
	return e.moveTo("PrecedingSibling", axisPrecedingSibling, t)
}

// Text moves to the text nodes of the current node: .../text().
func (e *Expression) Text() (*Expression, error) {
	return e.navigate("Text", "text()")
}

// SubElement appends a raw location step: .../step. The step is written
// verbatim and may carry its own axis or predicate.
func (e *Expression) SubElement(step string) (*Expression, error) {
	return e.navigate("SubElement", step)
}
