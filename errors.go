package glint

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInsufficientSpace is the only failure a layout can report. It is raised
// when a layout's fixed overhead does not fit inside the available maximum,
// or when the space left for a child collapses to zero.
var ErrInsufficientSpace = errors.New("insufficient space available")

// ErrConversion is returned when a ValueRef does not hold the shape the
// caller asked for. Treat it as a missing value.
var ErrConversion = errors.New("value has a different shape")

// ErrFrameClosed is returned when a value reference is read after the frame
// that produced it has ended.
var ErrFrameClosed = errors.New("value reference outlived its frame")

// EvaluationError wraps a failure raised while resolving an expression.
type EvaluationError struct {
	Expr string
	Err  error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Expr == "" {
		return fmt.Sprintf("glint: evaluate: %v", e.Err)
	}
	return fmt.Sprintf("glint: evaluate %q: %v", e.Expr, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapEvaluationError(expr string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		return evalErr
	}
	return &EvaluationError{Expr: expr, Err: err}
}
