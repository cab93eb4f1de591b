package types

import "fmt"

// ErrorCode represents a unified error code across the framework.
type ErrorCode string

// Orchestration error codes
const (
	ErrCodeEmptyHistory       ErrorCode = "EMPTY_HISTORY"
	ErrCodeInvariantViolation ErrorCode = "INVARIANT_VIOLATION"
	ErrCodeAlreadyDone        ErrorCode = "ALREADY_DONE"
	ErrCodeBackend            ErrorCode = "BACKEND"
	ErrCodeInvalidConfig      ErrorCode = "INVALID_CONFIG"
)

// Provider error codes
const (
	ErrCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrCodeAuthentication      ErrorCode = "AUTHENTICATION"
	ErrCodeRateLimited         ErrorCode = "RATE_LIMITED"
	ErrCodeUpstreamError       ErrorCode = "UPSTREAM_ERROR"
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
	Provider   string    `json:"provider,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHTTPStatus sets the HTTP status code.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithProvider sets the provider name.
func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}

// IsCode checks whether an error carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// IsEmptyHistory reports whether err is a read on empty history.
func IsEmptyHistory(err error) bool { return IsCode(err, ErrCodeEmptyHistory) }

// IsAlreadyDone reports whether err signals a step after termination.
func IsAlreadyDone(err error) bool { return IsCode(err, ErrCodeAlreadyDone) }

// IsInvariantViolation reports whether err signals a broken policy pairing.
func IsInvariantViolation(err error) bool { return IsCode(err, ErrCodeInvariantViolation) }

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Retryable
	}
	return false
}
