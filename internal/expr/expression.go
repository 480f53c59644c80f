package expr

import "fmt"

// Operator is the operation applied by an interior node
type Operator int

const (
	// Add computes left + right
	Add Operator = iota
	// Subtract computes left - right
	Subtract
	// Multiply computes left * right
	Multiply
	// Divide computes left / right, truncating toward zero
	Divide
)

var operatorSymbols = map[Operator]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
	Divide:   "/",
}

var operatorNames = map[Operator]string{
	Add:      "add",
	Subtract: "sub",
	Multiply: "mul",
	Divide:   "div",
}

// Valid reports whether o is one of the four known operators
func (o Operator) Valid() bool {
	_, ok := operatorSymbols[o]
	return ok
}

// Symbol returns the infix symbol of the operator
func (o Operator) Symbol() string {
	if s, ok := operatorSymbols[o]; ok {
		return s
	}
	return "?"
}

// Name returns the wire name of the operator
func (o Operator) Name() string {
	if n, ok := operatorNames[o]; ok {
		return n
	}
	return fmt.Sprintf("operator(%d)", int(o))
}

func (o Operator) String() string {
	return o.Name()
}

// ParseOperator resolves a wire name or symbol to an Operator
func ParseOperator(s string) (Operator, error) {
	for op, name := range operatorNames {
		if s == name || s == operatorSymbols[op] {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrMalformed, s)
}

// Expression is a node of an arithmetic expression tree. The only
// implementations are Value and *Operation.
type Expression interface {
	fmt.Stringer
	expression()
}

// Value is a leaf holding an integer literal
type Value int64

// Operation is an interior node owning its two operands
type Operation struct {
	Op    Operator
	Left  Expression
	Right Expression
}

func (Value) expression()      {}
func (*Operation) expression() {}

// Lit returns a literal leaf
func Lit(v int64) Expression {
	return Value(v)
}

// Op returns an interior node combining left and right with op
func Op(op Operator, left, right Expression) Expression {
	return &Operation{Op: op, Left: left, Right: right}
}

// Size returns the number of nodes in the tree
func Size(e Expression) int {
	switch n := e.(type) {
	case Value:
		return 1
	case *Operation:
		if n == nil {
			return 0
		}
		return 1 + Size(n.Left) + Size(n.Right)
	default:
		return 0
	}
}

// Height returns the number of nodes on the longest root-to-leaf path
func Height(e Expression) int {
	switch n := e.(type) {
	case Value:
		return 1
	case *Operation:
		if n == nil {
			return 0
		}
		return 1 + max(Height(n.Left), Height(n.Right))
	default:
		return 0
	}
}

// Validate reports ErrMalformed if any node of e is missing or carries an
// unknown operator
func Validate(e Expression) error {
	switch n := e.(type) {
	case Value:
		return nil
	case *Operation:
		if n == nil {
			return fmt.Errorf("%w: nil operation", ErrMalformed)
		}
		if !n.Op.Valid() {
			return fmt.Errorf("%w: unknown operator %d", ErrMalformed, int(n.Op))
		}
		if n.Left == nil || n.Right == nil {
			return fmt.Errorf("%w: %s node missing an operand", ErrMalformed, n.Op)
		}
		if err := Validate(n.Left); err != nil {
			return err
		}
		return Validate(n.Right)
	case nil:
		return fmt.Errorf("%w: nil expression", ErrMalformed)
	default:
		return fmt.Errorf("%w: unsupported node %T", ErrMalformed, e)
	}
}
