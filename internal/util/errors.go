package util

import (
	"errors"
	"net/http"
)

// Error codes shared across the service layer. The HTTP boundary maps them
// to status codes; everything not listed maps to 500.
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeInvalidData      = "INVALID_DATA"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
)

// AppError is the explicit failure value services return instead of raising
// from deep call stacks. Err keeps the underlying cause for logging; it is
// never serialized to the caller.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func InvalidParameter(message string) *AppError {
	return &AppError{Code: CodeInvalidParameter, Message: message}
}

func InvalidData(message string) *AppError {
	return &AppError{Code: CodeInvalidData, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func DatabaseError(message string, err error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Err: err}
}

func InternalError(message string, err error) *AppError {
	return &AppError{Code: CodeInternalError, Message: message, Err: err}
}

// HTTPStatus maps an error code to its response status. Unknown codes fall
// through to 500.
func HTTPStatus(code string) int {
	switch code {
	case CodeInvalidParameter:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// AsAppError normalizes any error to an AppError, wrapping unexpected ones
// as INTERNAL_ERROR.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: CodeInternalError, Message: "Internal server error", Err: err}
}
