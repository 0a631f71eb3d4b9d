package errors

import (
	"net/http"

	"schoolapp/internal/errors"
)

// Kind is the closed set of failure categories the core may report.
type Kind int

const (
	// KindUnexpected covers anything that was not explicitly classified.
	KindUnexpected Kind = iota
	KindInvalidRegistration
	KindAlreadyExists
	KindUnauthorized
	KindForbidden
	KindNotFound
)

// String returns the name used in structured logs.
func (k Kind) String() string {
	switch k {
	case KindInvalidRegistration:
		return "InvalidRegistration"
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unexpected"
	}
}

// HTTPCode returns the transport status for the kind.
func (k Kind) HTTPCode() int {
	switch k {
	case KindInvalidRegistration, KindAlreadyExists:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind
	HTTPCode() int        // HTTP status code
	ErrorCode() string    // Business error code
	Message() string      // User-friendly error message
	Fields() []FieldError // Per-field details, only set for invalid input
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	fields    []FieldError
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError with the same kind and code, so copies carrying a
// different message or field details still satisfy errors.Is against the sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.kind == t.kind && e.errorCode == t.errorCode
}

// Kind returns the error category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.kind.HTTPCode()
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Fields returns the per-field validation details
func (e *BaseError) Fields() []FieldError {
	return e.fields
}

// WithMessage returns a copy carrying a different user-facing message
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   message,
		fields:    e.fields,
	}
}

// WithFields returns a copy carrying per-field validation details
func (e *BaseError) WithFields(fields ...FieldError) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		fields:    append([]FieldError(nil), fields...),
	}
}

// Predefined error types
var (
	ErrInvalidRegistration = NewBaseError(
		KindInvalidRegistration,
		"INVALID_REGISTRATION",
		"ErrorsInRegistration",
	)

	// ErrInvalidPagination shares the 400 validation kind; the taxonomy has no
	// separate bucket for malformed query input.
	ErrInvalidPagination = NewBaseError(
		KindInvalidRegistration,
		"INVALID_PAGINATION",
		"Invalid pagination parameters",
	)

	ErrUserAlreadyExists = NewBaseError(
		KindAlreadyExists,
		"USER_ALREADY_EXISTS",
		"User with the same username or email already exists",
	)

	// ErrBadCredentials is deliberately identical for unknown identifiers and wrong passwords.
	ErrBadCredentials = NewBaseError(
		KindUnauthorized,
		"BAD_CREDENTIALS",
		"Bad Credentials",
	)

	ErrTokenInvalid = NewBaseError(
		KindUnauthorized,
		"TOKEN_INVALID",
		"Invalid or expired token",
	)

	ErrForbidden = NewBaseError(
		KindForbidden,
		"FORBIDDEN",
		"Access denied",
	)

	ErrUserNotFound = NewBaseError(
		KindNotFound,
		"USER_NOT_FOUND",
		"User not found",
	)

	ErrInternalError = NewBaseError(
		KindUnexpected,
		"INTERNAL_ERROR",
		"Internal server error",
	)
)

// Classify returns the first AppError in err's chain. Anything unclassified
// collapses to ErrInternalError so internal detail never reaches a caller.
func Classify(err error) AppError {
	if err == nil {
		return nil
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return ErrInternalError
}

// KindOf is shorthand for Classify(err).Kind().
func KindOf(err error) Kind {
	appErr := Classify(err)
	if appErr == nil {
		return KindUnexpected
	}

	return appErr.Kind()
}
