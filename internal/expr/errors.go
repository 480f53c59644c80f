package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrDivideByZero is returned when a divisor evaluates to zero
	ErrDivideByZero = errors.New("divide by zero")

	// ErrOverflow is returned when a result does not fit in an int64
	ErrOverflow = errors.New("integer overflow")

	// ErrMalformed is returned for trees with missing nodes or unknown operators
	ErrMalformed = errors.New("malformed expression")

	// ErrTooLarge is returned when a decoded tree exceeds the node limit
	ErrTooLarge = errors.New("expression too large")
)

// EvalError records the operation that failed and its evaluated operands
type EvalError struct {
	Op    Operator
	Left  int64
	Right int64
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate %d %s %d: %v", e.Left, e.Op.Symbol(), e.Right, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
