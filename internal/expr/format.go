package expr

import (
	"strconv"
	"strings"
)

// Format renders e as fully parenthesised infix text. Negative literals and
// nested operations are wrapped in parentheses; the root is not.
func Format(e Expression) string {
	var b strings.Builder
	format(&b, e, true)
	return b.String()
}

func format(b *strings.Builder, e Expression, root bool) {
	switch n := e.(type) {
	case Value:
		if n < 0 && !root {
			b.WriteByte('(')
			b.WriteString(strconv.FormatInt(int64(n), 10))
			b.WriteByte(')')
			return
		}
		b.WriteString(strconv.FormatInt(int64(n), 10))
	case *Operation:
		if n == nil {
			b.WriteString("<nil>")
			return
		}
		if !root {
			b.WriteByte('(')
		}
		format(b, n.Left, false)
		b.WriteByte(' ')
		b.WriteString(n.Op.Symbol())
		b.WriteByte(' ')
		format(b, n.Right, false)
		if !root {
			b.WriteByte(')')
		}
	default:
		b.WriteString("<nil>")
	}
}

func (v Value) String() string {
	return Format(v)
}

func (o *Operation) String() string {
	return Format(o)
}
