package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateValue(t *testing.T) {
	for _, v := range []int64{0, 19, -19, math.MaxInt64, math.MinInt64} {
		got, err := Evaluate(Lit(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestEvaluateBinary(t *testing.T) {
	tests := []struct {
		name  string
		op    Operator
		left  int64
		right int64
		want  int64
	}{
		{name: "sum", op: Add, left: 10, right: 20, want: 30},
		{name: "difference", op: Subtract, left: 10, right: 20, want: -10},
		{name: "product", op: Multiply, left: 10, right: 20, want: 200},
		{name: "quotient", op: Divide, left: 10, right: 2, want: 5},
		{name: "negative quotient truncates toward zero", op: Divide, left: -7, right: 2, want: -3},
		{name: "negative divisor truncates toward zero", op: Divide, left: 7, right: -2, want: -3},
		{name: "both negative", op: Divide, left: -7, right: -2, want: 3},
		{name: "zero sum", op: Add, left: 0, right: 0, want: 0},
		{name: "zero product", op: Multiply, left: 0, right: 0, want: 0},
		{name: "zero difference", op: Subtract, left: 0, right: 0, want: 0},
		{name: "zero dividend", op: Divide, left: 0, right: 5, want: 0},
		{name: "max plus zero", op: Add, left: math.MaxInt64, right: 0, want: math.MaxInt64},
		{name: "min minus zero", op: Subtract, left: math.MinInt64, right: 0, want: math.MinInt64},
		{name: "min times one", op: Multiply, left: math.MinInt64, right: 1, want: math.MinInt64},
		{name: "min divided by one", op: Divide, left: math.MinInt64, right: 1, want: math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(Op(tt.op, Lit(tt.left), Lit(tt.right)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateNested(t *testing.T) {
	tree := Op(Add,
		Op(Multiply, Lit(10), Lit(9)),
		Op(Multiply, Op(Subtract, Lit(3), Lit(4)), Lit(5)),
	)

	got, err := Evaluate(tree)
	require.NoError(t, err)
	assert.Equal(t, int64(85), got)

	// the tree is left untouched and evaluates the same way again
	again, err := Evaluate(tree)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestEvaluateDivideByZero(t *testing.T) {
	for _, dividend := range []int64{0, 1, -1, math.MaxInt64} {
		_, err := Evaluate(Op(Divide, Lit(dividend), Lit(0)))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDivideByZero)

		var evalErr *EvalError
		require.True(t, errors.As(err, &evalErr))
		assert.Equal(t, Divide, evalErr.Op)
		assert.Equal(t, dividend, evalErr.Left)
		assert.Equal(t, int64(0), evalErr.Right)
	}
}

func TestEvaluateDivideByComputedZero(t *testing.T) {
	tree := Op(Add,
		Lit(1),
		Op(Divide, Lit(8), Op(Subtract, Lit(4), Lit(4))),
	)

	_, err := Evaluate(tree)
	assert.ErrorIs(t, err, ErrDivideByZero)
	assert.EqualError(t, err, "evaluate 8 / 0: divide by zero")
}

func TestEvaluateOverflow(t *testing.T) {
	tests := []struct {
		name  string
		op    Operator
		left  int64
		right int64
	}{
		{name: "add above max", op: Add, left: math.MaxInt64, right: 1},
		{name: "add below min", op: Add, left: math.MinInt64, right: -1},
		{name: "subtract above max", op: Subtract, left: math.MaxInt64, right: -1},
		{name: "subtract below min", op: Subtract, left: math.MinInt64, right: 1},
		{name: "multiply large", op: Multiply, left: math.MaxInt64, right: 2},
		{name: "multiply min by minus one", op: Multiply, left: math.MinInt64, right: -1},
		{name: "multiply minus one by min", op: Multiply, left: -1, right: math.MinInt64},
		{name: "divide min by minus one", op: Divide, left: math.MinInt64, right: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(Op(tt.op, Lit(tt.left), Lit(tt.right)))
			assert.ErrorIs(t, err, ErrOverflow)
		})
	}
}

func TestEvaluateStopsAtFirstFailure(t *testing.T) {
	tree := Op(Add,
		Op(Divide, Lit(1), Lit(0)),
		Op(Add, Lit(math.MaxInt64), Lit(1)),
	)

	_, err := Evaluate(tree)
	assert.ErrorIs(t, err, ErrDivideByZero)
	assert.NotErrorIs(t, err, ErrOverflow)
}

func TestEvaluateMalformed(t *testing.T) {
	var nilOp *Operation

	tests := []struct {
		name string
		tree Expression
	}{
		{name: "nil root", tree: nil},
		{name: "typed nil operation", tree: nilOp},
		{name: "missing right", tree: &Operation{Op: Add, Left: Lit(1)}},
		{name: "missing left", tree: &Operation{Op: Add, Right: Lit(1)}},
		{name: "unknown operator", tree: &Operation{Op: Operator(42), Left: Lit(1), Right: Lit(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.tree)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestSizeAndHeight(t *testing.T) {
	tree := Op(Add,
		Op(Multiply, Lit(10), Lit(9)),
		Op(Multiply, Op(Subtract, Lit(3), Lit(4)), Lit(5)),
	)

	assert.Equal(t, 9, Size(tree))
	assert.Equal(t, 4, Height(tree))
	assert.Equal(t, 1, Size(Lit(1)))
	assert.Equal(t, 1, Height(Lit(1)))
	assert.Equal(t, 0, Size(nil))
}

func TestParseOperator(t *testing.T) {
	for _, op := range []Operator{Add, Subtract, Multiply, Divide} {
		byName, err := ParseOperator(op.Name())
		require.NoError(t, err)
		assert.Equal(t, op, byName)

		bySymbol, err := ParseOperator(op.Symbol())
		require.NoError(t, err)
		assert.Equal(t, op, bySymbol)
	}

	_, err := ParseOperator("mod")
	assert.ErrorIs(t, err, ErrMalformed)
	assert.False(t, Operator(9).Valid())
	assert.Equal(t, "?", Operator(9).Symbol())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Op(Divide, Lit(1), Lit(0))))
	assert.ErrorIs(t, Validate(nil), ErrMalformed)
	assert.ErrorIs(t, Validate(Op(Add, Lit(1), Op(Operator(8), Lit(1), Lit(2)))), ErrMalformed)
	assert.ErrorIs(t, Validate(Op(Add, Lit(1), &Operation{Op: Add, Left: Lit(1)})), ErrMalformed)
}
