package xpath

import "strconv"

// DefaultPlaceholder is the sentinel text some widgets show when no value
// has been chosen.
const DefaultPlaceholder = "(default)"

// Operands for text predicates. The "Text" family looks at the element's
// first direct text node, the "AllText" family at its whole string value.
const (
	firstText           = "text()[1]"
	normalizedFirstText = "normalize-space(text()[1])"
	allText             = "."
)

// WhereText matches the whitespace-normalized first text node exactly.
func (e *Expression) WhereText(value string, opts ...MatchOption) *Expression {
	return e.text(equalsMatcher, normalizedFirstText, value, opts)
}

// WhereNotText is the negation of WhereText.
func (e *Expression) WhereNotText(value string, opts ...MatchOption) *Expression {
	return e.text(negate(equalsMatcher), normalizedFirstText, value, opts)
}

// WhereAllText matches the full string value of the element, descendants
// included.
func (e *Expression) WhereAllText(value string, opts ...MatchOption) *Expression {
	return e.text(equalsMatcher, allText, value, opts)
}

// WhereNotAllText is the negation of WhereAllText.
func (e *Expression) WhereNotAllText(value string, opts ...MatchOption) *Expression {
	return e.text(negate(equalsMatcher), allText, value, opts)
}

// WhereTextContains matches a first text node containing value.
func (e *Expression) WhereTextContains(value string, opts ...MatchOption) *Expression {
	return e.text(containsMatcher, firstText, value, opts)
}

// WhereTextNotContains is the negation of WhereTextContains.
func (e *Expression) WhereTextNotContains(value string, opts ...MatchOption) *Expression {
	return e.text(negate(containsMatcher), firstText, value, opts)
}

// WhereAllTextContains matches a string value containing value.
func (e *Expression) WhereAllTextContains(value string, opts ...MatchOption) *Expression {
	return e.text(containsMatcher, allText, value, opts)
}

// WhereAllTextNotContains is the negation of WhereAllTextContains.
func (e *Expression) WhereAllTextNotContains(value string, opts ...MatchOption) *Expression {
	return e.text(negate(containsMatcher), allText, value, opts)
}

// WhereTextStartsWith matches a first text node starting with value.
func (e *Expression) WhereTextStartsWith(value string, opts ...MatchOption) *Expression {
	return e.text(startsWithMatcher, firstText, value, opts)
}

// WhereTextNotStartsWith is the negation of WhereTextStartsWith.
func (e *Expression) WhereTextNotStartsWith(value string, opts ...MatchOption) *Expression {
	return e.text(negate(startsWithMatcher), firstText, value, opts)
}

// WhereAllTextStartsWith matches a string value starting with value.
func (e *Expression) WhereAllTextStartsWith(value string, opts ...MatchOption) *Expression {
	return e.text(startsWithMatcher, allText, value, opts)
}

// WhereAllTextNotStartsWith is the negation of WhereAllTextStartsWith.
func (e *Expression) WhereAllTextNotStartsWith(value string, opts ...MatchOption) *Expression {
	return e.text(negate(startsWithMatcher), allText, value, opts)
}

// WhereTextEndsWith matches a first text node ending with value.
func (e *Expression) WhereTextEndsWith(value string, opts ...MatchOption) *Expression {
	return e.text(endsWithMatcher, firstText, value, opts)
}

// WhereTextNotEndsWith is the negation of WhereTextEndsWith.
func (e *Expression) WhereTextNotEndsWith(value string, opts ...MatchOption) *Expression {
	return e.text(negate(endsWithMatcher), firstText, value, opts)
}

// WhereAllTextEndsWith matches a string value ending with value.
func (e *Expression) WhereAllTextEndsWith(value string, opts ...MatchOption) *Expression {
	return e.text(endsWithMatcher, allText, value, opts)
}

// WhereAllTextNotEndsWith is the negation of WhereAllTextEndsWith.
func (e *Expression) WhereAllTextNotEndsWith(value string, opts ...MatchOption) *Expression {
	return e.text(negate(endsWithMatcher), allText, value, opts)
}

// WhereTextGreaterThan compares the text as a number (Int, Float) or as the
// normalized first text node (String).
func (e *Expression) WhereTextGreaterThan(v Value) *Expression {
	return e.compareText(cmpGreater, v)
}

// WhereTextGreaterOrEqual is the >= form of WhereTextGreaterThan.
func (e *Expression) WhereTextGreaterOrEqual(v Value) *Expression {
	return e.compareText(cmpGreaterEqual, v)
}

// WhereTextLessThan is the < form of WhereTextGreaterThan.
func (e *Expression) WhereTextLessThan(v Value) *Expression {
	return e.compareText(cmpLess, v)
}

// WhereTextLessOrEqual is the <= form of WhereTextGreaterThan.
func (e *Expression) WhereTextLessOrEqual(v Value) *Expression {
	return e.compareText(cmpLessEqual, v)
}

// WhereTextLength matches elements whose string value has exactly n characters.
func (e *Expression) WhereTextLength(n int) *Expression {
	return e.addCondition(textLength(" = ", n))
}

// WhereNotTextLength matches string values whose length is not n.
func (e *Expression) WhereNotTextLength(n int) *Expression {
	return e.addCondition("not(" + textLength(" = ", n) + ")")
}

// WhereTextLengthGreaterThan matches string values longer than n.
func (e *Expression) WhereTextLengthGreaterThan(n int) *Expression {
	return e.addCondition(textLength(cmpGreater, n))
}

// WhereTextLengthGreaterOrEqual matches string values of at least n characters.
func (e *Expression) WhereTextLengthGreaterOrEqual(n int) *Expression {
	return e.addCondition(textLength(cmpGreaterEqual, n))
}

// WhereTextLengthLessThan matches string values shorter than n.
func (e *Expression) WhereTextLengthLessThan(n int) *Expression {
	return e.addCondition(textLength(cmpLess, n))
}

// WhereTextLengthLessOrEqual matches string values of at most n characters.
func (e *Expression) WhereTextLengthLessOrEqual(n int) *Expression {
	return e.addCondition(textLength(cmpLessEqual, n))
}

// WhereTextIsDefault matches elements whose text contains DefaultPlaceholder.
func (e *Expression) WhereTextIsDefault() *Expression {
	return e.addCondition(placeholder())
}

// WhereTextIsNotDefault matches elements whose text lacks DefaultPlaceholder.
func (e *Expression) WhereTextIsNotDefault() *Expression {
	return e.addCondition("not(" + placeholder() + ")")
}

func (e *Expression) text(m matcher, operand, value string, opts []MatchOption) *Expression {
	return e.addCondition(e.match(m, operand, value, collect(opts)))
}

func (e *Expression) compareText(op string, v Value) *Expression {
	operand := "number(text())"
	if v.kind == KindString {
		operand = normalizedFirstText
	}
	return e.addCondition(operand + op + e.render(v, matchOptions{}))
}

func textLength(op string, n int) string {
	return "string-length()" + op + strconv.Itoa(n)
}

func placeholder() string {
	return "contains(text(), '" + DefaultPlaceholder + "')"
}
