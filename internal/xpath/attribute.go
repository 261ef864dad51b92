package xpath

// WhereAttributeExists matches elements that carry the attribute: [@name].
func (e *Expression) WhereAttributeExists(name string, opts ...MatchOption) *Expression {
	return e.addCondition(attributeAccessor(name, collect(opts)))
}

// WhereAttributeMissing matches elements without the attribute: [not(@name)].
func (e *Expression) WhereAttributeMissing(name string, opts ...MatchOption) *Expression {
	return e.addCondition("not(" + attributeAccessor(name, collect(opts)) + ")")
}

// WhereAttribute matches an exact attribute value: [@name='value'].
func (e *Expression) WhereAttribute(name, value string, opts ...MatchOption) *Expression {
	return e.attribute(equalsMatcher, name, value, opts)
}

// WhereNotAttribute matches elements whose attribute differs from value.
func (e *Expression) WhereNotAttribute(name, value string, opts ...MatchOption) *Expression {
	return e.attribute(negate(equalsMatcher), name, value, opts)
}

// WhereAnyAttribute matches elements having any attribute equal to value.
func (e *Expression) WhereAnyAttribute(value string, opts ...MatchOption) *Expression {
	return e.anyAttribute(false, value, opts)
}

// WhereNotAnyAttribute matches elements having no attribute equal to value.
func (e *Expression) WhereNotAnyAttribute(value string, opts ...MatchOption) *Expression {
	return e.anyAttribute(true, value, opts)
}

// WhereAttributeContains matches attributes containing value: contains(@name,'value').
func (e *Expression) WhereAttributeContains(name, value string, opts ...MatchOption) *Expression {
	return e.attribute(containsMatcher, name, value, opts)
}

// WhereAttributeNotContains matches attributes that do not contain value.
func (e *Expression) WhereAttributeNotContains(name, value string, opts ...MatchOption) *Expression {
	return e.attribute(negate(containsMatcher), name, value, opts)
}

// WhereAttributeStartsWith compares against the whitespace-normalized value.
func (e *Expression) WhereAttributeStartsWith(name, value string, opts ...MatchOption) *Expression {
	return e.normalizedAttribute(startsWithMatcher, name, value, opts)
}

// WhereAttributeNotStartsWith is the negation of WhereAttributeStartsWith.
func (e *Expression) WhereAttributeNotStartsWith(name, value string, opts ...MatchOption) *Expression {
	return e.normalizedAttribute(negate(startsWithMatcher), name, value, opts)
}

// WhereAttributeEndsWith compares against the whitespace-normalized value.
func (e *Expression) WhereAttributeEndsWith(name, value string, opts ...MatchOption) *Expression {
	return e.normalizedAttribute(endsWithMatcher, name, value, opts)
}

// WhereAttributeNotEndsWith is the negation of WhereAttributeEndsWith.
func (e *Expression) WhereAttributeNotEndsWith(name, value string, opts ...MatchOption) *Expression {
	return e.normalizedAttribute(negate(endsWithMatcher), name, value, opts)
}

// WhereAttributeGreaterThan matches @name > v. IgnoreCase applies to string values only.
func (e *Expression) WhereAttributeGreaterThan(name string, v Value, opts ...MatchOption) *Expression {
	return e.compareAttribute(cmpGreater, name, v, opts)
}

// WhereAttributeGreaterOrEqual matches @name >= v.
func (e *Expression) WhereAttributeGreaterOrEqual(name string, v Value, opts ...MatchOption) *Expression {
	return e.compareAttribute(cmpGreaterEqual, name, v, opts)
}

// WhereAttributeLessThan matches @name < v.
func (e *Expression) WhereAttributeLessThan(name string, v Value, opts ...MatchOption) *Expression {
	return e.compareAttribute(cmpLess, name, v, opts)
}

// WhereAttributeLessOrEqual matches @name <= v.
func (e *Expression) WhereAttributeLessOrEqual(name string, v Value, opts ...MatchOption) *Expression {
	return e.compareAttribute(cmpLessEqual, name, v, opts)
}

func (e *Expression) attribute(m matcher, name, value string, opts []MatchOption) *Expression {
	o := collect(opts)
	return e.addCondition(e.match(m, attributeAccessor(name, o), value, o))
}

// anyAttribute tests every attribute of the element. With IgnoreCase the
// comparison moves into a predicate on @* because translate() would reduce
// the node-set to its first attribute.
func (e *Expression) anyAttribute(negated bool, value string, opts []MatchOption) *Expression {
	o := collect(opts)
	accessor := attributeAccessor("*", o)

	var cond string
	if o.ignoreCase {
		cond = accessor + "[" + e.match(equalsMatcher, ".", value, o) + "]"
	} else {
		cond = equalsMatcher(accessor, e.literal(value))
	}
	if negated {
		cond = "not(" + cond + ")"
	}
	return e.addCondition(cond)
}

func (e *Expression) normalizedAttribute(m matcher, name, value string, opts []MatchOption) *Expression {
	o := collect(opts)
	operand := "normalize-space(" + attributeAccessor(name, o) + ")"
	return e.addCondition(e.match(m, operand, value, o))
}

// compareAttribute applies IgnoreCase only to string values.
func (e *Expression) compareAttribute(op, name string, v Value, opts []MatchOption) *Expression {
	o := collect(opts)
	operand := attributeAccessor(name, o)
	if o.ignoreCase && v.kind == KindString {
		operand = lowerCase(operand)
	}
	return e.addCondition(operand + op + e.render(v, o))
}
