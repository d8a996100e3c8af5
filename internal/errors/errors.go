package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeFetch      = "FETCH_FAILED"

	// Login error codes, mirroring the auth backend's known failure modes.
	ErrCodeUserNotFound    = "AUTH_USER_NOT_FOUND"
	ErrCodeAccessDenied    = "AUTH_ACCESS_DENIED"
	ErrCodeWrongPassword   = "AUTH_WRONG_PASSWORD"
	ErrCodeInvalidEmail    = "AUTH_INVALID_EMAIL"
	ErrCodeNetwork         = "AUTH_NETWORK_ERROR"
	ErrCodeTooManyRequests = "AUTH_TOO_MANY_REQUESTS"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "AUTH_WRONG_PASSWORD")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewFetchError wraps a failed widget fetch. Handlers render these as an
// inline message for that widget only; sibling widgets keep loading.
func NewFetchError(widget string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFetch,
		Message: fmt.Sprintf("Error loading %s", widget),
		Status:  500,
		Err:     err,
	}
}

// NewAuthError creates a login error with one of the AUTH_* codes.
func NewAuthError(code string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: LoginMessage(code),
		Status:  401,
		Err:     err,
	}
}

// LoginMessage maps a login error code to its fixed user-facing message.
// Unknown codes fall through to a generic message.
func LoginMessage(code string) string {
	switch code {
	case ErrCodeUserNotFound:
		return "Invalid User ID! Admin not found."
	case ErrCodeAccessDenied:
		return "Access Denied: You are not an admin!"
	case ErrCodeWrongPassword:
		return "Wrong password!"
	case ErrCodeInvalidEmail:
		return "Invalid email format in database!"
	case ErrCodeNetwork:
		return "Network error! Check your connection."
	case ErrCodeTooManyRequests:
		return "Too many failed attempts! Try again later."
	default:
		return "Login failed!"
	}
}
