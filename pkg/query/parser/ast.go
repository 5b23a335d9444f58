package parser

// Value is the literal on the right hand side of a comparison.
type Value interface {
	value() interface{}
}

type NumberExpr struct {
	Value float64
}

func (n NumberExpr) value() interface{} { return n.Value }

// StringExpr holds an unquoted string literal.
type StringExpr struct {
	Value string
}

func (n StringExpr) value() interface{} { return n.Value }

// Identifier is an entity.key reference such as metrics.loss. A bare key has
// an empty Identifier.
type Identifier struct {
	Identifier string
	Key        string
}

type OperatorKind int

const (
	Equals OperatorKind = iota
	NotEquals
	Less
	LessEquals
	Greater
	GreaterEquals
	IsNull
	IsNotNull
)

type Expr interface {
	expr()
}

// CompareExpr is a single condition. Right is nil for IS [NOT] NULL.
type CompareExpr struct {
	Left     Identifier
	Operator OperatorKind
	Right    Value
}

// AndExpr holds two or more conditions that must all match.
type AndExpr struct {
	Exprs []Expr
}

// OrExpr holds two or more conditions of which one must match.
type OrExpr struct {
	Exprs []Expr
}

func (*CompareExpr) expr() {}
func (*AndExpr) expr()     {}
func (*OrExpr) expr()      {}
