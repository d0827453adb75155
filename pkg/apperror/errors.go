package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// Wallet ledger errors. Deductions fail atomically: when one of these is
// returned no balance was changed and no transaction record was written.
var (
	ErrCardNotFound        = &AppError{Code: http.StatusNotFound, Message: "Wallet card not found"}
	ErrCardInactive        = &AppError{Code: http.StatusUnprocessableEntity, Message: "Wallet card is inactive"}
	ErrInsufficientBalance = &AppError{Code: http.StatusUnprocessableEntity, Message: "Insufficient wallet card balance"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewPersistenceError wraps a repository failure that happened before any
// wallet deduction, so the operator knows nothing was charged.
func NewPersistenceError(step string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to save %s: %v. No wallet card was charged", step, err),
	}
}

// NewChargedPersistenceError reports the one true partial-failure window: a
// wallet deduction succeeded but document persistence failed. The message
// states whether the deduction was reversed so the operator can decide
// whether a retry is safe.
func NewChargedPersistenceError(reversed bool, err error) *AppError {
	if reversed {
		return &AppError{
			Code:    http.StatusInternalServerError,
			Message: fmt.Sprintf("Failed to save document: %v. The wallet deduction was reversed", err),
		}
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to save document: %v. WARNING: the wallet card was charged and the reversal failed; reconcile the card before retrying", err),
	}
}

// NewPartialFailureError reports a bulk creation that stopped midway.
// Documents already created are not rolled back.
func NewPartialFailureError(created, requested int, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("Created %d of %d documents before failing: %v. Documents already created were kept", created, requested, err),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
