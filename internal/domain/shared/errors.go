package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Every ledger operation surfaces one of these kinds;
// storage error detail never leaks through them.
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidReference = NewDomainError("INVALID_REFERENCE", "Referenced resource does not belong to the expected parent")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Role does not permit this operation")
	ErrForbidden        = NewDomainError("FORBIDDEN", "Access to another society's records is forbidden")
	ErrConflict         = NewDomainError("CONFLICT", "Resource already exists")
	ErrValidation       = NewDomainError("VALIDATION", "Invalid input provided")
)

// NewValidationError creates a VALIDATION error with a specific reason
func NewValidationError(message string) *DomainError {
	return NewDomainError("VALIDATION", message)
}

// NewConflictError creates a CONFLICT error with a specific reason
func NewConflictError(message string) *DomainError {
	return NewDomainError("CONFLICT", message)
}

// NewNotFoundError creates a NOT_FOUND error with a specific reason
func NewNotFoundError(message string) *DomainError {
	return NewDomainError("NOT_FOUND", message)
}

// IsKind reports whether err is (or wraps) a DomainError with the given code.
func IsKind(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
