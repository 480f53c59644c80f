package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedJSON = `{
	"op": "add",
	"left": {"op": "mul", "left": {"value": 10}, "right": {"value": 9}},
	"right": {
		"op": "*",
		"left": {"op": "sub", "left": {"value": 3}, "right": {"value": 4}},
		"right": {"value": 5}
	}
}`

func TestDecode(t *testing.T) {
	tree, err := Decode([]byte(nestedJSON), 0)
	require.NoError(t, err)

	assert.Equal(t, "(10 * 9) + ((3 - 4) * 5)", Format(tree))

	v, err := Evaluate(tree)
	require.NoError(t, err)
	assert.Equal(t, int64(85), v)
}

func TestDecodeZeroLiteral(t *testing.T) {
	tree, err := Decode([]byte(`{"op":"div","left":{"value":4},"right":{"value":0}}`), 0)
	require.NoError(t, err)

	_, err = Evaluate(tree)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "not json", data: `{`, want: ErrMalformed},
		{name: "empty node", data: `{}`, want: ErrMalformed},
		{name: "value and op", data: `{"value":1,"op":"add","left":{"value":1},"right":{"value":1}}`, want: ErrMalformed},
		{name: "unknown operator", data: `{"op":"pow","left":{"value":1},"right":{"value":1}}`, want: ErrMalformed},
		{name: "missing right", data: `{"op":"add","left":{"value":1}}`, want: ErrMalformed},
		{name: "children without op", data: `{"left":{"value":1},"right":{"value":1}}`, want: ErrMalformed},
		{name: "too large", data: nestedJSON, want: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), 5)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMarshal(t *testing.T) {
	tree := Op(Divide, Lit(-7), Op(Add, Lit(0), Lit(2)))

	data, err := Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"op":"div","left":{"value":-7},"right":{"op":"add","left":{"value":0},"right":{"value":2}}}`,
		string(data),
	)

	decoded, err := Decode(data, Size(tree))
	require.NoError(t, err)
	assert.Equal(t, tree, decoded)

	_, err = Marshal(&Operation{Op: Operator(7), Left: Lit(1), Right: Lit(1)})
	assert.ErrorIs(t, err, ErrMalformed)
}
