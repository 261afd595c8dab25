// Package errors provides structured error types for the forcetower application.
//
// The simulation core (vector, kdtree, kinetics, force) does not return
// errors: precondition violations there panic. Codes are produced at the
// boundary, where graph files, configuration and options enter the system,
// and travel up to the CLI, which maps them to exit statuses.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (exit status 2)
//   - FILE_NOT_FOUND: A named input file does not exist (exit status 2)
//   - INTERNAL_ERROR: Unexpected internal errors (exit status 1)
//
// Codes nest: a configuration file whose force table is malformed yields an
// INVALID_CONFIG error wrapping an INVALID_FORCE one, and [Is] matches both.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidEdge, "edge %d: unknown node %q", i, id)
//	if errors.Is(err, errors.ErrCodeInvalidEdge) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidEdge   Code = "INVALID_EDGE"
	ErrCodeInvalidForce  Code = "INVALID_FORCE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Exit statuses returned by [ExitCode].
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or the
// empty string if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err without code prefixes: the messages of every
// *Error in the chain joined by ": ", followed by the first plain cause.
func UserMessage(err error) string {
	var parts []string
	for err != nil {
		e, ok := err.(*Error)
		if !ok {
			var inner *Error
			if !errors.As(err, &inner) {
				parts = append(parts, err.Error())
				break
			}
			// a plain wrapper around an *Error: keep its text, drop the code
			parts = append(parts, strings.TrimSuffix(err.Error(), ": "+inner.Error()))
			e = inner
		}
		parts = append(parts, e.Message)
		err = e.Cause
	}
	return strings.Join(parts, ": ")
}

// ExitCode maps err to a process exit status: 0 for nil, ExitUsage for
// input problems the user can fix, ExitFailure otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	code := GetCode(err)
	if strings.HasPrefix(string(code), "INVALID_") || code == ErrCodeFileNotFound {
		return ExitUsage
	}
	return ExitFailure
}
