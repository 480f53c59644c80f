package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		tree Expression
		want string
	}{
		{tree: Lit(7), want: "7"},
		{tree: Lit(-7), want: "-7"},
		{tree: Op(Divide, Lit(-7), Lit(2)), want: "(-7) / 2"},
		{tree: Op(Subtract, Lit(3), Lit(-4)), want: "3 - (-4)"},
		{
			tree: Op(Add,
				Op(Multiply, Lit(10), Lit(9)),
				Op(Multiply, Op(Subtract, Lit(3), Lit(4)), Lit(5)),
			),
			want: "(10 * 9) + ((3 - 4) * 5)",
		},
		{tree: &Operation{Op: Add, Left: Lit(1)}, want: "1 + <nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.tree))
			assert.Equal(t, tt.want, tt.tree.String())
		})
	}
}
