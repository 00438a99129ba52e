package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Storage errors
	ErrInternal = errors.New("internal error")
)

// Enrollment workflow errors
var (
	ErrCapacityExceeded    = errors.New("no seats available in section")
	ErrDuplicateEnrollment = errors.New("student already enrolled for academic year")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewValidationError creates a new custom error for failed validations with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewCapacityExceededError creates a new custom error for a full section
func NewCapacityExceededError(message string) error {
	return &CustomError{Err: ErrCapacityExceeded, Message: message}
}

// NewDuplicateEnrollmentError creates a new custom error for a repeated enrollment
func NewDuplicateEnrollmentError(message string) error {
	return &CustomError{Err: ErrDuplicateEnrollment, Message: message}
}

// NewInternalError creates a new custom error for storage or filesystem failures
func NewInternalError(message string) error {
	return &CustomError{Err: ErrInternal, Message: message}
}
