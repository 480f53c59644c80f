package engine

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-node-arith/internal/expr"
	"go.uber.org/zap"
)

// evaluateNative performs the post-order tree walk
func (e *Engine) evaluateNative(tree expr.Expression) (int64, error) {
	return expr.Evaluate(tree)
}

// evaluateCEL evaluates the rendered tree with CEL
func (e *Engine) evaluateCEL(ctx context.Context, tree expr.Expression) (int64, error) {
	return e.celEvaluator.EvaluateExpression(ctx, tree)
}

// evaluateVerify runs both backends. Matching failures are reported with the
// native error; any other disagreement is a mismatch.
func (e *Engine) evaluateVerify(ctx context.Context, tree expr.Expression) (int64, error) {
	nativeValue, nativeErr := e.evaluateNative(tree)
	celValue, celErr := e.evaluateCEL(ctx, tree)

	switch {
	case nativeErr != nil && celErr != nil:
		if ErrorKind(nativeErr) == ErrorKind(celErr) {
			return 0, nativeErr
		}
		e.logger.Warn("backends failed differently",
			zap.NamedError("native_error", nativeErr),
			zap.NamedError("cel_error", celErr),
		)
		return 0, fmt.Errorf("%w: native %q, cel %q", ErrBackendMismatch, ErrorKind(nativeErr), ErrorKind(celErr))

	case nativeErr != nil:
		return 0, fmt.Errorf("%w: native failed (%v), cel produced %d", ErrBackendMismatch, nativeErr, celValue)

	case celErr != nil:
		return 0, fmt.Errorf("%w: cel failed (%v), native produced %d", ErrBackendMismatch, celErr, nativeValue)

	case nativeValue != celValue:
		return 0, fmt.Errorf("%w: native %d, cel %d", ErrBackendMismatch, nativeValue, celValue)
	}

	return nativeValue, nil
}
