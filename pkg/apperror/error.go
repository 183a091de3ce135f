package apperror

import "net/http"

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Reason carries the internal decision reason for logging. It is never
	// sent to the client.
	Reason string `json:"-"`
	Err    error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// InvalidRequest marks a caller contract violation (missing principal, target
// or action). Same wire shape as BadRequest, distinct constructor so call
// sites read as what they are.
func InvalidRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

// AccessDenied wraps a DENY decision as an error. Clients always get the same
// generic message; the reason stays server-side.
func AccessDenied(reason string) *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Message: "Access denied due to privacy settings",
		Reason:  reason,
	}
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// Unavailable marks a retryable infrastructure failure (settings store
// unreachable and similar).
func Unavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
