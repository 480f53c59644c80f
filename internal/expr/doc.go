// Package expr implements the integer arithmetic expression tree and its
// evaluator.
//
// A tree is built bottom-up from literals and operations and reduced by a
// post-order walk:
//
//	tree := expr.Op(expr.Add,
//	    expr.Op(expr.Multiply, expr.Lit(10), expr.Lit(9)),
//	    expr.Op(expr.Multiply,
//	        expr.Op(expr.Subtract, expr.Lit(3), expr.Lit(4)),
//	        expr.Lit(5)),
//	)
//	v, err := expr.Evaluate(tree) // 85, nil
//
// Arithmetic is checked: division by zero fails with ErrDivideByZero and
// results outside the int64 range fail with ErrOverflow. Division truncates
// toward zero.
//
// Trees travel between services as JSON:
//
//	{"op": "add", "left": {"value": 1}, "right": {"value": 2}}
package expr
