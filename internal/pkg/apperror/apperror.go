package apperror

import (
	"errors"
	"fmt"
)

// AppError is an operational error carrying the HTTP status it should be
// reported with. Anything that is not an AppError is treated as unexpected
// and reported generically.
type AppError struct {
	Code    int
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches a structured payload (e.g. a field-level error list).
func (e *AppError) WithDetails(details interface{}) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Details: details}
}

// Common constructors matching the API error taxonomy.

func BadRequest(message string) *AppError   { return New(400, message) }
func Unauthorized(message string) *AppError { return New(401, message) }
func Forbidden(message string) *AppError    { return New(403, message) }
func NotFound(message string) *AppError     { return New(404, message) }
func Conflict(message string) *AppError     { return New(409, message) }
func TooManyRequests(message string) *AppError {
	return New(429, message)
}
func Unavailable(message string) *AppError { return New(503, message) }

// As unwraps err into an *AppError when possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
