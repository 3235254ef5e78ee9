package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
)

// AppError represents an application-specific error
type AppError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Details   string `json:"details,omitempty"`
	Cause     error  `json:"-"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code, message string, cause error) *AppError {
	return newAppError(code, message, cause)
}

// newAppError records the location of whoever called the exported constructor.
func newAppError(code, message string, cause error) *AppError {
	_, file, line, _ := runtime.Caller(2)
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
		File:    file,
		Line:    line,
	}
}

// WithOperation adds operation context to the error
func (e *AppError) WithOperation(operation string) *AppError {
	e.Operation = operation
	return e
}

// WithDetails adds additional details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithField records which request field the error is about
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

// Error codes
const (
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeInvalidEmail     = "INVALID_EMAIL"
	ErrCodeInvalidValue     = "INVALID_VALUE"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Public response copy. These strings are part of the HTTP contract.
const (
	MsgMissingFields  = "Missing required fields"
	MsgInvalidEmail   = "Invalid email format"
	MsgInvalidBody    = "Invalid request body"
	MsgDuplicateEmail = "This email is already on the waitlist!"
	MsgJoinFailed     = "Failed to join waitlist. Please try again."
	MsgInternal       = "Internal server error"
)

// Common error constructors
func MissingField(field string) *AppError {
	return newAppError(ErrCodeMissingField, MsgMissingFields, nil).WithField(field)
}

func InvalidEmail(cause error) *AppError {
	return newAppError(ErrCodeInvalidEmail, MsgInvalidEmail, cause).WithField("email")
}

func InvalidValue(field, value string) *AppError {
	return newAppError(ErrCodeInvalidValue, "Invalid value for "+field, nil).
		WithField(field).
		WithDetails(fmt.Sprintf("%q is not an accepted value", value))
}

func InvalidInput(message string, cause error) *AppError {
	return newAppError(ErrCodeInvalidInput, message, cause)
}

func DuplicateEmail(cause error) *AppError {
	return newAppError(ErrCodeDuplicateEmail, MsgDuplicateEmail, cause).WithField("email")
}

func StoreUnavailable(message string, cause error) *AppError {
	return newAppError(ErrCodeStoreUnavailable, message, cause)
}

func InternalError(message string, cause error) *AppError {
	return newAppError(ErrCodeInternalError, message, cause)
}

// As extracts an *AppError from err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given AppError code
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// HTTPStatus maps an error to the status code returned to callers
func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrCodeMissingField, ErrCodeInvalidEmail, ErrCodeInvalidValue, ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeDuplicateEmail:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text that is safe to show a caller. Server-side
// failures never expose their cause.
func PublicMessage(err error) string {
	appErr, ok := As(err)
	if !ok {
		return MsgInternal
	}
	switch appErr.Code {
	case ErrCodeStoreUnavailable:
		return MsgJoinFailed
	case ErrCodeInternalError:
		return MsgInternal
	default:
		return appErr.Message
	}
}
