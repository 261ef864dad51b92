package xpath

// state tracks where the builder is in the predicate grammar.
type state uint8

const (
	// stateNode: a context was opened and has no predicate yet.
	stateNode state = iota

	// statePredicate: '[' is open and ends with a complete condition.
	statePredicate

	// stateOperator: a combinator was written and awaits a condition.
	stateOperator
)

func (s state) String() string {
	switch s {
	case stateNode:
		return "node"
	case statePredicate:
		return "predicate"
	case stateOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// predicateOpen reports whether a '[' is waiting for its ']'.
func (s state) predicateOpen() bool {
	switch s {
	case statePredicate, stateOperator:
		return true
	case stateNode:
		return false
	default:
		return false
	}
}

// Axis is how the root context of an expression is reached.
type Axis string

const (
	// AxisGlobal searches the whole document.
	AxisGlobal Axis = "//"

	// AxisChild searches direct children of the current node.
	AxisChild Axis = "./"

	// AxisDescendant searches anywhere below the current node.
	AxisDescendant Axis = ".//"
)

// ParseAxis maps a short axis name ("global", "child", "descendant") or the
// literal prefix to an Axis. The empty string means AxisGlobal.
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "", "global", string(AxisGlobal):
		return AxisGlobal, true
	case "child", string(AxisChild):
		return AxisChild, true
	case "descendant", string(AxisDescendant):
		return AxisDescendant, true
	default:
		return "", false
	}
}
