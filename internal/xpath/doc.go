// Package xpath builds XPath 1.0 locator strings through a fluent, stateful
// builder.
//
// An Expression owns a text buffer and a three-state tracker:
//
//	stateNode       a context (tag or *) is open, no predicate yet
//	statePredicate  a '[' is open and the last thing written was a condition
//	stateOperator   an "and"/"or" was just written, a condition must follow
//
// Predicate methods (Where*) add one condition to the open context, opening
// the bracket on first use and inserting " and " between two conditions when
// no combinator was called. Navigation methods (Child, Parent, ...) close the
// open predicate and start a new context; they fail with an
// *InvalidStateError when an operator is pending. Render and friends produce
// the final string without mutating the builder.
//
// Example:
//
//	e, err := xpath.From("table").
//		WhereAttribute("id", "grades").
//		Child(xpath.Tag("tr"))
//	if err != nil {
//		return err
//	}
//	e.WherePosition(2)
//	e.Render() // //table[@id='grades']/child::tr[position() = 2]
//
// The builder only generates text. It never parses or evaluates XPath.
//
// Known hazards kept for compatibility with existing callers:
//   - Render does not reject a dangling operator; use RenderStrict for that.
//   - Literals that contain both ' and " cannot be expressed as an XPath 1.0
//     string literal; they are rendered with double quotes and reported by
//     RenderStrict as ErrUnsupportedLiteral.
//
// An Expression is not safe for concurrent use.
package xpath
