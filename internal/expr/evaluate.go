package expr

import (
	"fmt"
	"math"
)

// Evaluate reduces e to its integer value. Operands are evaluated left
// before right; the tree is never modified.
func Evaluate(e Expression) (int64, error) {
	switch n := e.(type) {
	case Value:
		return int64(n), nil
	case *Operation:
		if n == nil {
			return 0, fmt.Errorf("%w: nil operation", ErrMalformed)
		}
		if n.Left == nil || n.Right == nil {
			return 0, fmt.Errorf("%w: %s node missing an operand", ErrMalformed, n.Op)
		}

		left, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(n.Right)
		if err != nil {
			return 0, err
		}

		return apply(n.Op, left, right)
	case nil:
		return 0, fmt.Errorf("%w: nil expression", ErrMalformed)
	default:
		return 0, fmt.Errorf("%w: unsupported node %T", ErrMalformed, e)
	}
}

// apply combines two operands with checked int64 arithmetic
func apply(op Operator, left, right int64) (int64, error) {
	fail := func(err error) (int64, error) {
		return 0, &EvalError{Op: op, Left: left, Right: right, Err: err}
	}

	switch op {
	case Add:
		if (right > 0 && left > math.MaxInt64-right) || (right < 0 && left < math.MinInt64-right) {
			return fail(ErrOverflow)
		}
		return left + right, nil

	case Subtract:
		if (right < 0 && left > math.MaxInt64+right) || (right > 0 && left < math.MinInt64+right) {
			return fail(ErrOverflow)
		}
		return left - right, nil

	case Multiply:
		if left == 0 || right == 0 {
			return 0, nil
		}
		product := left * right
		if product/right != left ||
			(left == -1 && right == math.MinInt64) ||
			(right == -1 && left == math.MinInt64) {
			return fail(ErrOverflow)
		}
		return product, nil

	case Divide:
		if right == 0 {
			return fail(ErrDivideByZero)
		}
		if left == math.MinInt64 && right == -1 {
			return fail(ErrOverflow)
		}
		// Go integer division truncates toward zero
		return left / right, nil

	default:
		return 0, fmt.Errorf("%w: unknown operator %d", ErrMalformed, int(op))
	}
}
