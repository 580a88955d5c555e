package rest

import (
	"errors"
	"fmt"
	nethttp "net/http"
)

// ErrorKind defines the category of a terminal failure
type ErrorKind string

const (
	KindRateLimited        ErrorKind = "rate_limited"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindNetworkUnavailable ErrorKind = "network_unavailable"
	KindHTTP               ErrorKind = "http"
	KindUnknown            ErrorKind = "unknown"
)

// ErrorInfo describes a terminal failure of a logical operation. It is
// constructed once, at the moment the failure is recognized, and is immutable
// afterwards. It implements error so a faulted envelope can surface it
// directly to callers.
type ErrorInfo struct {
	kind       ErrorKind
	statusCode int
	message    string
	cause      error
}

func (e *ErrorInfo) Error() string {
	switch {
	case e.statusCode > 0 && e.cause != nil:
		return fmt.Sprintf("%s error: %s (status: %d): %v", e.kind, e.message, e.statusCode, e.cause)
	case e.statusCode > 0:
		return fmt.Sprintf("%s error: %s (status: %d)", e.kind, e.message, e.statusCode)
	case e.cause != nil:
		return fmt.Sprintf("%s error: %s: %v", e.kind, e.message, e.cause)
	default:
		return fmt.Sprintf("%s error: %s", e.kind, e.message)
	}
}

// Unwrap exposes the original cause for errors.Is/As chains
func (e *ErrorInfo) Unwrap() error {
	return e.cause
}

// Kind returns the failure category
func (e *ErrorInfo) Kind() ErrorKind {
	return e.kind
}

// StatusCode returns the HTTP status attached to the failure, or 0 when the
// failure happened below the HTTP layer.
func (e *ErrorInfo) StatusCode() int {
	return e.statusCode
}

// Message returns the human-readable description of the failure
func (e *ErrorInfo) Message() string {
	return e.message
}

// NewRateLimitedError creates a failure for a 429 response
func NewRateLimitedError(message string) *ErrorInfo {
	return &ErrorInfo{kind: KindRateLimited, statusCode: nethttp.StatusTooManyRequests, message: message}
}

// NewUnauthorizedError creates a failure for a 401 response that persisted after retry
func NewUnauthorizedError(message string) *ErrorInfo {
	return &ErrorInfo{kind: KindUnauthorized, statusCode: nethttp.StatusUnauthorized, message: message}
}

// NewNetworkUnavailableError creates a failure for a connectivity or name-resolution fault
func NewNetworkUnavailableError(message string, cause error) *ErrorInfo {
	return &ErrorInfo{kind: KindNetworkUnavailable, message: message, cause: cause}
}

// NewHTTPError creates a failure for any other non-success status
func NewHTTPError(message string, statusCode int) *ErrorInfo {
	return &ErrorInfo{kind: KindHTTP, statusCode: statusCode, message: message}
}

// NewUnknownError creates a failure for deserialization faults and unclassified exceptions
func NewUnknownError(message string, cause error) *ErrorInfo {
	return &ErrorInfo{kind: KindUnknown, message: message, cause: cause}
}

// IsKind checks if an error is an ErrorInfo of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var info *ErrorInfo
	if errors.As(err, &info) {
		return info.kind == kind
	}
	return false
}

// ErrorMapper builds the failure for a terminal non-success response from its
// status code and body.
type ErrorMapper func(statusCode int, body []byte) *ErrorInfo

// DefaultErrorMapper classifies terminal responses by status code:
// 429 is rate limiting, 401 is an authorization failure, everything else is a
// generic HTTP failure carrying the status.
func DefaultErrorMapper(statusCode int, body []byte) *ErrorInfo {
	message := nethttp.StatusText(statusCode)
	if len(body) > 0 {
		message = string(body)
	}

	switch statusCode {
	case nethttp.StatusTooManyRequests:
		return NewRateLimitedError(message)
	case nethttp.StatusUnauthorized:
		return NewUnauthorizedError(message)
	default:
		return NewHTTPError(message, statusCode)
	}
}
