package httpclient

import (
	"errors"
	"fmt"
)

// ErrClosed is matched by errors.Is for requests sent through a closed transport.
var ErrClosed = errors.New("httpclient: transport closed")

// ErrorCode classifies transport errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeValidation indicates a request that could not be built.
	ErrCodeValidation
	// ErrCodeClosed indicates the transport was closed.
	ErrCodeClosed
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Error is a transport-level failure. HTTP error statuses are not errors
// at this layer.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports ErrClosed for closed-transport errors.
func (e *Error) Is(target error) bool {
	return target == ErrClosed && e.Code == ErrCodeClosed
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// NewValidationError creates a validation error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// NewClosedError creates a closed-transport error.
func NewClosedError() *Error {
	return &Error{Code: ErrCodeClosed, Message: "transport closed"}
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsValidation checks if an error is a request-building error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeValidation
}
