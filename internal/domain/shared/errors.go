package shared

import "fmt"

// DomainError represents a business rule violation with a stable code
// that the HTTP layer maps to a status.
type DomainError struct {
	Code    string
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewDomainErrorf creates a new DomainError with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "operation not allowed in current state")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrForbidden           = NewDomainError("FORBIDDEN", "forbidden")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "resource was modified concurrently")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "insufficient stock")
)

// Error code constants for errors constructed with context-specific messages
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInvalidDiscount     = "INVALID_DISCOUNT"
	ErrCodeQuantityExceedsMax  = "QUANTITY_EXCEEDS_STOCK"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeInvalidOTP          = "INVALID_OTP"
	ErrCodeEmailNotVerified    = "EMAIL_NOT_VERIFIED"
	ErrCodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
)

// IsNotFound reports whether err carries the NOT_FOUND code
func IsNotFound(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrNotFound.Code
	}
	return false
}
