package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aescanero/dago-node-arith/internal/eval/cel"
	"github.com/aescanero/dago-node-arith/internal/eval/template"
	"github.com/aescanero/dago-node-arith/internal/expr"
	"go.uber.org/zap"
)

// Mode represents the evaluation strategy
type Mode string

const (
	// ModeNative walks the tree directly
	ModeNative Mode = "native"

	// ModeCEL evaluates the rendered tree with CEL
	ModeCEL Mode = "cel"

	// ModeVerify runs both backends and compares them
	ModeVerify Mode = "verify"
)

// ParseMode validates a mode name. The empty string is accepted and means
// "use the engine default".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "", ModeNative, ModeCEL, ModeVerify:
		return m, nil
	default:
		return "", fmt.Errorf("unknown evaluation mode: %s", s)
	}
}

// ErrBackendMismatch is returned in verify mode when backends disagree
var ErrBackendMismatch = errors.New("backend mismatch")

// Request is a single evaluation request
type Request struct {
	ID         string
	Mode       Mode
	Expression expr.Expression
}

// Result represents the outcome of a successful evaluation
type Result struct {
	RequestID  string `json:"request_id"`
	Value      int64  `json:"value"`
	Expression string `json:"expression"`
	Mode       string `json:"mode"`
	PathTaken  string `json:"path_taken"` // "native", "cel", "verified"
	Nodes      int    `json:"nodes"`
	Summary    string `json:"summary"`
}

// Options configures an Engine
type Options struct {
	DefaultMode     Mode
	SummaryTemplate string
	FailureTemplate string
}

// Engine evaluates expression trees
type Engine struct {
	celEvaluator    *cel.Evaluator
	templateEngine  *template.Engine
	defaultMode     Mode
	summaryTemplate string
	failureTemplate string
	logger          *zap.Logger
}

// NewEngine creates a new engine
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if opts.DefaultMode == "" {
		opts.DefaultMode = ModeNative
	}
	if opts.SummaryTemplate == "" {
		opts.SummaryTemplate = template.DefaultSummary
	}
	if opts.FailureTemplate == "" {
		opts.FailureTemplate = template.DefaultFailure
	}

	return &Engine{
		celEvaluator:    cel.NewEvaluator(),
		templateEngine:  template.NewEngine(),
		defaultMode:     opts.DefaultMode,
		summaryTemplate: opts.SummaryTemplate,
		failureTemplate: opts.FailureTemplate,
		logger:          logger,
	}
}

// Evaluate evaluates the request's tree with the requested mode
func (e *Engine) Evaluate(ctx context.Context, req *Request) (*Result, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	mode := req.Mode
	if mode == "" {
		mode = e.defaultMode
	}

	rendered := expr.Format(req.Expression)
	e.logger.Debug("evaluation request",
		zap.String("request_id", req.ID),
		zap.String("mode", string(mode)),
		zap.String("expression", rendered),
	)

	var (
		value int64
		path  string
		err   error
	)

	switch mode {
	case ModeNative:
		value, err = e.evaluateNative(req.Expression)
		path = "native"
	case ModeCEL:
		value, err = e.evaluateCEL(ctx, req.Expression)
		path = "cel"
	case ModeVerify:
		value, err = e.evaluateVerify(ctx, req.Expression)
		path = "verified"
	default:
		return nil, fmt.Errorf("unknown evaluation mode: %s", mode)
	}

	if err != nil {
		e.logger.Info("evaluation failed",
			zap.String("request_id", req.ID),
			zap.String("mode", string(mode)),
			zap.String("kind", ErrorKind(err)),
			zap.Error(err),
		)
		return nil, err
	}

	result := &Result{
		RequestID:  req.ID,
		Value:      value,
		Expression: rendered,
		Mode:       string(mode),
		PathTaken:  path,
		Nodes:      expr.Size(req.Expression),
	}

	result.Summary, err = e.templateEngine.Render(e.summaryTemplate, map[string]interface{}{
		"request_id": req.ID,
		"expression": rendered,
		"value":      strconv.FormatInt(value, 10),
		"mode":       string(mode),
		"path":       path,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}

	e.logger.Info("evaluation result",
		zap.String("request_id", req.ID),
		zap.String("mode", string(mode)),
		zap.Int64("value", value),
		zap.String("path", path),
	)

	return result, nil
}

// FailureSummary renders the failure template for a failed request
func (e *Engine) FailureSummary(req *Request, err error) string {
	rendered := "<none>"
	if req != nil && req.Expression != nil {
		rendered = expr.Format(req.Expression)
	}

	summary, renderErr := e.templateEngine.Render(e.failureTemplate, map[string]interface{}{
		"expression": rendered,
		"kind":       ErrorKind(err),
		"error":      err.Error(),
	})
	if renderErr != nil {
		e.logger.Warn("failed to render failure summary", zap.Error(renderErr))
		return err.Error()
	}

	return summary
}

// SelfCheck evaluates a fixed tree through both backends
func (e *Engine) SelfCheck(ctx context.Context) error {
	tree := expr.Op(expr.Add,
		expr.Op(expr.Multiply, expr.Lit(10), expr.Lit(9)),
		expr.Op(expr.Multiply, expr.Op(expr.Subtract, expr.Lit(3), expr.Lit(4)), expr.Lit(5)),
	)

	v, err := e.evaluateVerify(ctx, tree)
	if err != nil {
		return err
	}
	if v != 85 {
		return fmt.Errorf("self check produced %d, want 85", v)
	}

	return nil
}

// validateRequest validates the evaluation request
func (e *Engine) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("request is nil")
	}

	if err := expr.Validate(req.Expression); err != nil {
		return err
	}

	if _, err := ParseMode(string(req.Mode)); err != nil {
		return err
	}

	return nil
}

// ErrorKind maps an evaluation error to a stable identifier
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBackendMismatch):
		return "backend_mismatch"
	case errors.Is(err, expr.ErrDivideByZero):
		return "divide_by_zero"
	case errors.Is(err, expr.ErrOverflow):
		return "overflow"
	case errors.Is(err, expr.ErrTooLarge):
		return "too_large"
	case errors.Is(err, expr.ErrMalformed):
		return "malformed"
	default:
		return "internal"
	}
}
