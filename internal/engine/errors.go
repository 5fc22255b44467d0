package engine

import (
	"errors"
	"fmt"
)

// Error represents a failure detected by the tracepoint engine.
//
// Engine errors include:
//   - Template arity mismatch: placeholder count != expression count
//   - Index out of range: removal with an invalid registry index
//   - Evaluation failure: an expression failed against the hit context
//
// Error includes structured fields for diagnostics.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Location identifies the affected tracepoint's location spec.
	Location string

	// Index is the offending registry index (for index errors).
	Index int

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeTemplateArity indicates the message template's placeholder
	// count does not match the expression count.
	ErrCodeTemplateArity ErrorCode = "TEMPLATE_ARITY"

	// ErrCodeIndexOutOfRange indicates a registry index outside [0, len).
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeEvaluation indicates an expression failed to evaluate during
	// a hit or a test format.
	ErrCodeEvaluation ErrorCode = "EVALUATION"

	// ErrCodeBind indicates the host refused to install a binding.
	ErrCodeBind ErrorCode = "BIND"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s (location=%s)", e.Code, e.Message, e.Location)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// IsArityError returns true if the error is a template arity mismatch.
// Uses errors.As to handle wrapped errors.
func IsArityError(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeTemplateArity
	}
	return false
}

// IsIndexError returns true if the error is an out-of-range registry index.
// Uses errors.As to handle wrapped errors.
func IsIndexError(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeIndexOutOfRange
	}
	return false
}

// IsEvaluationError returns true if the error is an expression evaluation
// failure. Uses errors.As to handle wrapped errors.
func IsEvaluationError(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeEvaluation
	}
	return false
}

// NewArityError creates an Error for a template arity mismatch.
func NewArityError(location string, placeholders, exprs int) *Error {
	return &Error{
		Code:     ErrCodeTemplateArity,
		Message:  fmt.Sprintf("template has %d placeholder(s) but %d expression(s) given", placeholders, exprs),
		Location: location,
	}
}

// NewIndexError creates an Error for an out-of-range registry index.
func NewIndexError(index, length int) *Error {
	return &Error{
		Code:    ErrCodeIndexOutOfRange,
		Message: fmt.Sprintf("index %d out of range [0, %d)", index, length),
		Index:   index,
	}
}
