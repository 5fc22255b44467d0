package host

import (
	"errors"
	"fmt"
)

// BindError reports a failure to install a location binding.
type BindError struct {
	Spec    string
	Message string
}

// Error implements the error interface.
func (e *BindError) Error() string {
	return fmt.Sprintf("cannot bind %q: %s", e.Spec, e.Message)
}

// EvalError reports a failure to evaluate an expression in a context.
type EvalError struct {
	Expr    string
	Message string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("cannot evaluate %q: %s", e.Expr, e.Message)
}

// IsBindError reports whether err is (or wraps) a BindError.
func IsBindError(err error) bool {
	var be *BindError
	return errors.As(err, &be)
}

// IsEvalError reports whether err is (or wraps) an EvalError.
func IsEvalError(err error) bool {
	var ee *EvalError
	return errors.As(err, &ee)
}
