package xpath

import "strconv"

// WherePosition matches the n-th (1-based) node of the context: position() = n.
func (e *Expression) WherePosition(n int) *Expression {
	return e.addCondition(position(" = ", n))
}

// WhereNotPosition matches every node except the n-th.
func (e *Expression) WhereNotPosition(n int) *Expression {
	return e.addCondition("not(" + position(" = ", n) + ")")
}

// WherePositionGreaterThan matches nodes after the n-th.
func (e *Expression) WherePositionGreaterThan(n int) *Expression {
	return e.addCondition(position(cmpGreater, n))
}

// WherePositionGreaterOrEqual matches the n-th node and those after it.
func (e *Expression) WherePositionGreaterOrEqual(n int) *Expression {
	return e.addCondition(position(cmpGreaterEqual, n))
}

// WherePositionLessThan matches nodes before the n-th.
func (e *Expression) WherePositionLessThan(n int) *Expression {
	return e.addCondition(position(cmpLess, n))
}

// WherePositionLessOrEqual matches the n-th node and those before it.
func (e *Expression) WherePositionLessOrEqual(n int) *Expression {
	return e.addCondition(position(cmpLessEqual, n))
}

// WhereLastPosition matches the last node of the context.
//
// It renders as an explicit comparison rather than a bare last() so it stays
// a boolean when joined with other conditions.
func (e *Expression) WhereLastPosition() *Expression {
	return e.addCondition("position() = last()")
}

// WhereLastPositionOffset matches the node n places before the last one.
func (e *Expression) WhereLastPositionOffset(n int) *Expression {
	if n == 0 {
		return e.WhereLastPosition()
	}
	return e.addCondition("position() = last() - " + strconv.Itoa(n))
}

func position(op string, n int) string {
	return "position()" + op + strconv.Itoa(n)
}
