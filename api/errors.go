// File: api/errors.go
// Author: payamazadi <payamazadi@gmail.com>
//
// Common error types and error handling utilities for the kopimashin harness.

package api

import "fmt"

// Common errors used across the harness.
var (
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrSinkRejected    = fmt.Errorf("sink rejected submission")
	ErrShortWrite      = fmt.Errorf("short write")
	ErrAlreadyArmed    = fmt.Errorf("watchdog already armed")
	ErrNotSupported    = fmt.Errorf("operation not supported")
)

// ErrorCode represents specific error conditions in the harness.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeStartupIO
	ErrCodeSinkFault
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapError creates a structured error around an underlying cause.
func WrapError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
		Cause:   cause,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode from err, ErrCodeInternal if unstructured.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ErrCodeInternal
}
