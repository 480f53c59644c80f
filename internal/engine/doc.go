// Package engine implements the evaluation strategies used by the
// arithmetic worker.
//
// The engine supports three modes:
//   - Native: post-order walk of the expression tree
//   - CEL: the tree is rendered and evaluated by the CEL runtime
//   - Verify: both backends run and their outcomes must agree
//
// Example:
//
//	eng := engine.NewEngine(engine.Options{DefaultMode: engine.ModeNative}, logger)
//	result, err := eng.Evaluate(ctx, &engine.Request{
//	    ID:         "req-1",
//	    Expression: expr.Op(expr.Divide, expr.Lit(10), expr.Lit(2)),
//	})
//	// result.Value == 5, result.Summary == "10 / 2 = 5"
package engine
