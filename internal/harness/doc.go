// Package harness runs locator scenarios.
//
// A scenario is a YAML file naming one or more directories of CUE locator
// definitions and a list of cases. Each case names a locator and states
// what compiling it must produce:
//
//   - expect: the exact rendered expression
//   - expect_error: the kind of builder error (invalid_state,
//     unsupported_literal) or compile for any definition error
//   - html + matches / first_text: the number of nodes the expression
//     selects in an HTML fixture and the inner text of the first one
//
// Fixtures are evaluated with htmlquery, so an expression that renders but
// is not valid XPath fails the case.
//
// Example:
//
//	name: grades
//	description: locators for the grades page
//	definitions: [../definitions]
//	cases:
//	  - locator: grade_table
//	    expect: "//table[@id='grades']"
//	    html: ../fixtures/grades.html
//	    matches: 1
package harness
