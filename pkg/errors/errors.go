package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Action errors
	ErrActionNotFound ErrorCode = "ACTION_NOT_FOUND"
	ErrActionInvalid  ErrorCode = "ACTION_INVALID"
	ErrActionFailed   ErrorCode = "ACTION_FAILED"

	// Output errors
	ErrOutputFormat ErrorCode = "OUTPUT_FORMAT"
)

// SmokesignalError represents a structured error with code and details
type SmokesignalError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SmokesignalError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SmokesignalError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a SmokesignalError with the same code.
func (e *SmokesignalError) Is(target error) bool {
	var targetErr *SmokesignalError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SmokesignalError with the given code and message
func New(code ErrorCode, message string) *SmokesignalError {
	return &SmokesignalError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SmokesignalError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SmokesignalError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *SmokesignalError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SmokesignalError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *SmokesignalError) WithDetail(key string, value interface{}) *SmokesignalError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var sErr *SmokesignalError
	if errors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SmokesignalError
func GetErrorCode(err error) ErrorCode {
	var sErr *SmokesignalError
	if errors.As(err, &sErr) {
		return sErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil
func GetErrorDetails(err error) map[string]interface{} {
	var sErr *SmokesignalError
	if errors.As(err, &sErr) {
		return sErr.Details
	}
	return nil
}
