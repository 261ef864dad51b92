// Package locator turns declarative locator definitions into XPath
// expressions.
//
// A Definition names a starting tag, an axis and an ordered list of steps.
// Each step names one builder operation (attribute, text_contains, and,
// child, ...) together with its arguments. Compile replays the steps on a
// fresh xpath.Expression, so a definition obeys exactly the same state
// rules as hand-written builder code.
//
// Definitions are usually written in CUE:
//
//	locator: grade_table: {
//		from: "table"
//		steps: [{op: "attribute", name: "id", value: "grades"}]
//	}
//
// LoadDir loads every definition under the top-level locator field of a
// directory of .cue files.
package locator
