package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry the same codes, so
// the mapping below is the single place where a code picks its HTTP status.
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests and JSON parse failures
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when input fails domain validation
	ErrCodeValidation = "VALIDATION"
	// ErrCodeNotFound is used when a resource does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeConflict is used when a uniqueness rule is violated
	ErrCodeConflict = "CONFLICT"
	// ErrCodeDuplicatePayment is used when a payment already exists for a
	// flat and billing period
	ErrCodeDuplicatePayment = "DUPLICATE_PAYMENT"
	// ErrCodeInvalidReference is used when a referenced resource belongs to a
	// different parent, e.g. a category from another society
	ErrCodeInvalidReference = "INVALID_REFERENCE"
	// ErrCodeUnauthorized is used when the actor's role does not permit the
	// operation
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used on cross-society access
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeInvalidCredentials is used for failed logins
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is malformed or revoked
	ErrCodeTokenInvalid = "TOKEN_INVALID"
	// ErrCodeTokenError is used when token generation fails
	ErrCodeTokenError = "TOKEN_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeDuplicatePayment: http.StatusConflict,
	ErrCodeInvalidReference: http.StatusUnprocessableEntity,

	ErrCodeUnauthorized:       http.StatusForbidden,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenError:         http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for codes it does not know.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
