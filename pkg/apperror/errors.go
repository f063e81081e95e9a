package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Session token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid session token"}
	ErrSubmissionInFlight = &AppError{Code: http.StatusConflict, Message: "A submission is already in progress"}
	ErrUnknownFormField   = &AppError{Code: http.StatusBadRequest, Message: "Unknown form field"}
	ErrInvalidFieldValue  = &AppError{Code: http.StatusBadRequest, Message: "Invalid field value"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, resource+" not found")
}

// NewSubmissionFailedError wraps a submission gateway failure. The order data
// survives the failure, so the caller may retry the submission as-is.
func NewSubmissionFailedError(cause error) *AppError {
	return NewAppError(http.StatusBadGateway, "Failed to record purchase: "+cause.Error())
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(http.StatusInternalServerError, err.Error())
}
