// Package cel provides a CEL (Common Expression Language) backend for
// arithmetic expression trees.
//
// Trees are rendered to infix source with expr.Format and compiled once into
// cached CEL programs. CEL integer arithmetic is checked and truncates toward
// zero, so it yields the same values as the native tree walk and can be used
// to cross-check it.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//
//	tree := expr.Op(expr.Divide, expr.Lit(-7), expr.Lit(2))
//	v, err := evaluator.EvaluateExpression(ctx, tree)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// v == -3
//
// CEL runtime errors for division by zero and integer overflow are reported
// as expr.ErrDivideByZero and expr.ErrOverflow.
package cel
