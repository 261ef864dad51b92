package locator

import (
	"fmt"
	"sort"

	"github.com/roach88/xpathq/internal/xpath"
)

// argSet is the set of arguments an operation requires.
type argSet uint8

const (
	argName    argSet = 1 << iota
	argText           // Value, must be a string
	argLiteral        // Value, any supported kind
	argTarget
	argN
)

// call is a step with its target already resolved against the builder.
type call struct {
	Args
	target xpath.Target
}

type operation struct {
	needs argSet
	apply func(e *xpath.Expression, c call) (*xpath.Expression, error)
}

type (
	bareFunc      func(*xpath.Expression) *xpath.Expression
	stringFunc    func(*xpath.Expression, string, ...xpath.MatchOption) *xpath.Expression
	nameValueFunc func(*xpath.Expression, string, string, ...xpath.MatchOption) *xpath.Expression
	nameCmpFunc   func(*xpath.Expression, string, xpath.Value, ...xpath.MatchOption) *xpath.Expression
	cmpFunc       func(*xpath.Expression, xpath.Value) *xpath.Expression
	countFunc     func(*xpath.Expression, int) *xpath.Expression
	relationFunc  func(*xpath.Expression, xpath.Target) *xpath.Expression
	moveFunc      func(*xpath.Expression, xpath.Target) (*xpath.Expression, error)
)

func bare(f bareFunc) operation {
	return operation{apply: func(e *xpath.Expression, _ call) (*xpath.Expression, error) {
		return f(e), nil
	}}
}

func byName(f stringFunc) operation {
	return operation{needs: argName, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return f(e, c.Name, c.options()...), nil
	}}
}

func byText(f stringFunc) operation {
	return operation{needs: argText, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return f(e, c.Value.(string), c.options()...), nil
	}}
}

func nameValue(f nameValueFunc) operation {
	return operation{needs: argName | argText, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return f(e, c.Name, c.Value.(string), c.options()...), nil
	}}
}

func nameCmp(f nameCmpFunc) operation {
	return operation{needs: argName | argLiteral, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return f(e, c.Name, literal(c.Value), c.options()...), nil
	}}
}

func cmp(f cmpFunc) operation {
	return operation{needs: argLiteral, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return f(e, literal(c.Value)), nil
	}}
}

func count(f countFunc) operation {
	return operation{needs: argN, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return f(e, *c.N), nil
	}}
}

func relation(f relationFunc) operation {
	return operation{needs: argTarget, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return f(e, c.target), nil
	}}
}

func move(f moveFunc) operation {
	return operation{needs: argTarget, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return f(e, c.target)
	}}
}

// operations maps step op names to builder calls.
var operations = map[string]operation{
	"and": bare((*xpath.Expression).And),
	"or":  bare((*xpath.Expression).Or),

	"attribute_exists":          byName((*xpath.Expression).WhereAttributeExists),
	"attribute_missing":         byName((*xpath.Expression).WhereAttributeMissing),
	"attribute":                 nameValue((*xpath.Expression).WhereAttribute),
	"not_attribute":             nameValue((*xpath.Expression).WhereNotAttribute),
	"any_attribute":             byText((*xpath.Expression).WhereAnyAttribute),
	"not_any_attribute":         byText((*xpath.Expression).WhereNotAnyAttribute),
	"attribute_contains":        nameValue((*xpath.Expression).WhereAttributeContains),
	"attribute_not_contains":    nameValue((*xpath.Expression).WhereAttributeNotContains),
	"attribute_starts_with":     nameValue((*xpath.Expression).WhereAttributeStartsWith),
	"attribute_not_starts_with": nameValue((*xpath.Expression).WhereAttributeNotStartsWith),
	"attribute_ends_with":       nameValue((*xpath.Expression).WhereAttributeEndsWith),
	"attribute_not_ends_with":   nameValue((*xpath.Expression).WhereAttributeNotEndsWith),
	"attribute_gt":              nameCmp((*xpath.Expression).WhereAttributeGreaterThan),
	"attribute_ge":              nameCmp((*xpath.Expression).WhereAttributeGreaterOrEqual),
	"attribute_lt":              nameCmp((*xpath.Expression).WhereAttributeLessThan),
	"attribute_le":              nameCmp((*xpath.Expression).WhereAttributeLessOrEqual),

	"text":                     byText((*xpath.Expression).WhereText),
	"not_text":                 byText((*xpath.Expression).WhereNotText),
	"all_text":                 byText((*xpath.Expression).WhereAllText),
	"not_all_text":             byText((*xpath.Expression).WhereNotAllText),
	"text_contains":            byText((*xpath.Expression).WhereTextContains),
	"text_not_contains":        byText((*xpath.Expression).WhereTextNotContains),
	"all_text_contains":        byText((*xpath.Expression).WhereAllTextContains),
	"all_text_not_contains":    byText((*xpath.Expression).WhereAllTextNotContains),
	"text_starts_with":         byText((*xpath.Expression).WhereTextStartsWith),
	"text_not_starts_with":     byText((*xpath.Expression).WhereTextNotStartsWith),
	"all_text_starts_with":     byText((*xpath.Expression).WhereAllTextStartsWith),
	"all_text_not_starts_with": byText((*xpath.Expression).WhereAllTextNotStartsWith),
	"text_ends_with":           byText((*xpath.Expression).WhereTextEndsWith),
	"text_not_ends_with":       byText((*xpath.Expression).WhereTextNotEndsWith),
	"all_text_ends_with":       byText((*xpath.Expression).WhereAllTextEndsWith),
	"all_text_not_ends_with":   byText((*xpath.Expression).WhereAllTextNotEndsWith),
	"text_gt":                  cmp((*xpath.Expression).WhereTextGreaterThan),
	"text_ge":                  cmp((*xpath.Expression).WhereTextGreaterOrEqual),
	"text_lt":                  cmp((*xpath.Expression).WhereTextLessThan),
	"text_le":                  cmp((*xpath.Expression).WhereTextLessOrEqual),
	"text_length":              count((*xpath.Expression).WhereTextLength),
	"not_text_length":          count((*xpath.Expression).WhereNotTextLength),
	"text_length_gt":           count((*xpath.Expression).WhereTextLengthGreaterThan),
	"text_length_ge":           count((*xpath.Expression).WhereTextLengthGreaterOrEqual),
	"text_length_lt":           count((*xpath.Expression).WhereTextLengthLessThan),
	"text_length_le":           count((*xpath.Expression).WhereTextLengthLessOrEqual),
	"text_is_default":          bare((*xpath.Expression).WhereTextIsDefault),
	"text_is_not_default":      bare((*xpath.Expression).WhereTextIsNotDefault),

	"position":             count((*xpath.Expression).WherePosition),
	"not_position":         count((*xpath.Expression).WhereNotPosition),
	"position_gt":          count((*xpath.Expression).WherePositionGreaterThan),
	"position_ge":          count((*xpath.Expression).WherePositionGreaterOrEqual),
	"position_lt":          count((*xpath.Expression).WherePositionLessThan),
	"position_le":          count((*xpath.Expression).WherePositionLessOrEqual),
	"last_position":        bare((*xpath.Expression).WhereLastPosition),
	"last_position_offset": count((*xpath.Expression).WhereLastPositionOffset),

	"where_parent":                relation((*xpath.Expression).WhereParent),
	"where_not_parent":            relation((*xpath.Expression).WhereNotParent),
	"where_child":                 relation((*xpath.Expression).WhereChild),
	"where_not_child":             relation((*xpath.Expression).WhereNotChild),
	"where_ancestor":              relation((*xpath.Expression).WhereAncestor),
	"where_not_ancestor":          relation((*xpath.Expression).WhereNotAncestor),
	"where_descendant":            relation((*xpath.Expression).WhereDescendant),
	"where_not_descendant":        relation((*xpath.Expression).WhereNotDescendant),
	"where_preceding_sibling":     relation((*xpath.Expression).WherePrecedingSibling),
	"where_not_preceding_sibling": relation((*xpath.Expression).WhereNotPrecedingSibling),
	"where_following_sibling":     relation((*xpath.Expression).WhereFollowingSibling),
	"where_not_following_sibling": relation((*xpath.Expression).WhereNotFollowingSibling),

	"parent":            move((*xpath.Expression).Parent),
	"child":             move((*xpath.Expression).Child),
	"ancestor":          move((*xpath.Expression).Ancestor),
	"descendant":        move((*xpath.Expression).Descendant),
	"following_sibling": move((*xpath.Expression).FollowingSibling),
	"preceding_sibling": move((*xpath.Expression).PrecedingSibling),
	"text_node": {apply: func(e *xpath.Expression, _ call) (*xpath.Expression, error) {
		return e.Text()
	}},
	"sub_element": {needs: argText, apply: func(e *xpath.Expression, c call) (*xpath.Expression, error) {
		return e.SubElement(c.Value.(string))
	}},
}

// Operations returns the sorted names of every supported step op.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c call) options() []xpath.MatchOption {
	var opts []xpath.MatchOption
	if c.Namespace {
		opts = append(opts, xpath.Namespace())
	}
	if c.IgnoreCase {
		opts = append(opts, xpath.IgnoreCase())
	}
	return opts
}

// checkArgs reports the first required argument that is missing or has the
// wrong kind. The returned field is one of FieldArgs or FieldType.
func (o operation) checkArgs(a Args) (field, msg string) {
	if o.needs&argName != 0 && a.Name == "" {
		return FieldArgs, "name is required"
	}
	if o.needs&(argText|argLiteral) != 0 {
		if a.Value == nil {
			return FieldArgs, "value is required"
		}
		if _, ok := a.Value.(string); !ok && o.needs&argText != 0 {
			return FieldType, fmt.Sprintf("value must be a string, got %T", a.Value)
		}
		switch a.Value.(type) {
		case string, int, int64, float64:
		default:
			return FieldType, fmt.Sprintf("value must be a string or number, got %T", a.Value)
		}
	}
	if o.needs&argTarget != 0 && a.Target == nil {
		return FieldArgs, "target is required"
	}
	if o.needs&argN != 0 && a.N == nil {
		return FieldArgs, "n is required"
	}
	return "", ""
}

// literal converts a checked Value argument.
func literal(v any) xpath.Value {
	switch val := v.(type) {
	case int:
		return xpath.Int(int64(val))
	case int64:
		return xpath.Int(val)
	case float64:
		return xpath.Float(val)
	default:
		return xpath.String(fmt.Sprint(val))
	}
}
