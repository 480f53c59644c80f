package cel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aescanero/dago-node-arith/internal/expr"
	"github.com/google/cel-go/cel"
)

// Evaluator evaluates integer arithmetic through CEL
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates a new CEL evaluator
func NewEvaluator() *Evaluator {
	env, err := cel.NewEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}
}

// EvaluateExpression renders the tree and evaluates it
func (e *Evaluator) EvaluateExpression(ctx context.Context, tree expr.Expression) (int64, error) {
	if err := expr.Validate(tree); err != nil {
		return 0, err
	}
	return e.Evaluate(ctx, expr.Format(tree))
}

// Evaluate evaluates CEL source that must produce an int
func (e *Evaluator) Evaluate(ctx context.Context, source string) (int64, error) {
	program, err := e.getProgram(source)
	if err != nil {
		return 0, fmt.Errorf("failed to compile expression: %w", err)
	}

	out, _, err := program.ContextEval(ctx, map[string]interface{}{})
	if err != nil {
		return 0, fmt.Errorf("evaluation failed: %w", classify(err))
	}

	v, ok := out.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("expression produced %T, want int64", out.Value())
	}

	return v, nil
}

// classify maps CEL runtime errors onto the expr sentinels
func classify(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "divide by zero"), strings.Contains(msg, "division by zero"):
		return fmt.Errorf("%w: %v", expr.ErrDivideByZero, err)
	case strings.Contains(msg, "overflow"):
		return fmt.Errorf("%w: %v", expr.ErrOverflow, err)
	default:
		return err
	}
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(source string) (cel.Program, error) {
	e.mu.RLock()
	if program, ok := e.cache[source]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[source]; ok {
		return program, nil
	}

	ast, err := e.compile(source)
	if err != nil {
		return nil, err
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	e.cache[source] = program

	return program, nil
}

func (e *Evaluator) compile(source string) (*cel.Ast, error) {
	ast, issues := e.env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	if ast.OutputType().String() != cel.IntType.String() {
		return nil, fmt.Errorf("expression has type %s, want int", ast.OutputType())
	}

	return ast, nil
}

// ValidateExpression checks that source compiles to an int expression
func (e *Evaluator) ValidateExpression(source string) error {
	_, err := e.compile(source)
	return err
}

// CacheSize returns the number of compiled programs held
func (e *Evaluator) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// ClearCache clears the compiled program cache
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}
