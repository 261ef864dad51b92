package xpath

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// XPath 1.0 has no case-insensitive comparison, so both sides are folded
// with translate() over these alphabets.
const (
	upperAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijklmnopqrstuvwxyz"
)

// quote wraps s in single quotes, or double quotes if s contains a single
// quote. ok is false when s contains both and cannot be expressed.
func quote(s string) (quoted string, ok bool) {
	if !strings.Contains(s, "'") {
		return "'" + s + "'", true
	}
	return `"` + s + `"`, !strings.Contains(s, `"`)
}

// literal quotes s and remembers it if it cannot be represented.
func (e *Expression) literal(s string) string {
	q, ok := quote(s)
	if !ok && e.unsupported == "" {
		e.unsupported = s
	}
	return q
}

func lowerCase(operand string) string {
	return "translate(" + operand + ", '" + upperAlphabet + "', '" + lowerAlphabet + "')"
}

func foldLiteral(s string) string {
	return cases.Lower(language.Und).String(s)
}

// MatchOption tweaks how a predicate renders its operand.
type MatchOption func(*matchOptions)

type matchOptions struct {
	namespace  bool
	ignoreCase bool
}

// Namespace renders the attribute accessor as namespace::name instead of
// @name. It has no effect on text predicates.
func Namespace() MatchOption {
	return func(o *matchOptions) { o.namespace = true }
}

// IgnoreCase lowercases both the operand (through translate) and the literal.
func IgnoreCase() MatchOption {
	return func(o *matchOptions) { o.ignoreCase = true }
}

func collect(opts []MatchOption) matchOptions {
	var o matchOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func attributeAccessor(name string, o matchOptions) string {
	if o.namespace {
		return "namespace::" + name
	}
	return "@" + name
}

// matcher renders a condition from an operand and an already quoted literal.
type matcher func(operand, lit string) string

func equalsMatcher(operand, lit string) string {
	return operand + "=" + lit
}

func containsMatcher(operand, lit string) string {
	return "contains(" + operand + "," + lit + ")"
}

func startsWithMatcher(operand, lit string) string {
	return "starts-with(" + operand + "," + lit + ")"
}

// endsWithMatcher uses substring() because ends-with() is not XPath 1.0.
func endsWithMatcher(operand, lit string) string {
	return "substring(" + operand + ", string-length(" + operand + ") - string-length(" + lit + ") + 1)=" + lit
}

func negate(m matcher) matcher {
	return func(operand, lit string) string {
		return "not(" + m(operand, lit) + ")"
	}
}

// match renders m against operand and value, honoring IgnoreCase.
func (e *Expression) match(m matcher, operand, value string, o matchOptions) string {
	if o.ignoreCase {
		operand = lowerCase(operand)
		value = foldLiteral(value)
	}
	return m(operand, e.literal(value))
}

// Kind is the primitive type carried by a Value.
type Kind uint8

const (
	KindInt    Kind = iota // int64, rendered bare
	KindFloat              // float64, rendered bare
	KindString             // string, rendered as a quoted literal
)

// String returns the lowercase name of k.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is an operand of an ordering comparison. Numbers render bare,
// strings render as quoted literals.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int returns an integer Value.
func Int(n int64) Value { return Value{kind: KindInt, i: n} }

// Float returns a floating point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// render formats v as XPath source.
func (e *Expression) render(v Value, o matchOptions) string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		s := v.s
		if o.ignoreCase {
			s = foldLiteral(s)
		}
		return e.literal(s)
	default:
		return ""
	}
}

// formatFloat spells out non-finite values as XPath 1.0 divisions since the
// language has no literals for them.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "(0 div 0)"
	case math.IsInf(f, 1):
		return "(1 div 0)"
	case math.IsInf(f, -1):
		return "(-1 div 0)"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// Comparison operators for ordering predicates.
const (
	cmpGreater      = " > "
	cmpGreaterEqual = " >= "
	cmpLess         = " < "
	cmpLessEqual    = " <= "
)
