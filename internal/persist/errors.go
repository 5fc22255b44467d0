package persist

import (
	"errors"
	"fmt"
)

// Error represents a failure in the persistence layer.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Path is the definitions file involved.
	Path string

	// Line is the 1-based offending line number (for parse errors).
	Line int

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes persistence errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the import path is not an existing
	// readable file.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeParse indicates a malformed definition line.
	ErrCodeParse ErrorCode = "PARSE"

	// ErrCodeIO indicates a read or write failure.
	ErrCodeIO ErrorCode = "IO"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %s", e.Code, e.Path, e.Line, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// IsNotFoundError returns true if the error reports a missing import
// file. Uses errors.As to handle wrapped errors.
func IsNotFoundError(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeNotFound
	}
	return false
}

// IsParseError returns true if the error reports a malformed definition
// line. Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeParse
	}
	return false
}

// IsIOError returns true if the error reports a read/write failure.
// Uses errors.As to handle wrapped errors.
func IsIOError(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeIO
	}
	return false
}
