package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches by code and message so copies made by WrapError still compare
// equal to the predefined values.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Validation returns an INVALID_INPUT error carrying a caller-facing message.
func Validation(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeLastAdmin          = "LAST_ADMIN"
	CodeInvalidFileType    = "INVALID_FILE_TYPE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeAccountInactive    = "ACCOUNT_INACTIVE"
	CodeForbidden          = "FORBIDDEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeFileNotFound       = "FILE_NOT_FOUND"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeInternal           = "INTERNAL_ERROR"
)

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound       = NewDomainError(CodeUserNotFound, "User not found")
	ErrEmailExists        = NewDomainError(CodeEmailExists, "Email already registered")
	ErrEmailInUse         = NewDomainError(CodeEmailExists, "Email already in use")
	ErrInvalidCredentials = NewDomainError(CodeInvalidCredentials, "Invalid email or password")
	ErrAccountInactive    = NewDomainError(CodeAccountInactive, "Account is deactivated")
	ErrLastAdmin          = NewDomainError(CodeLastAdmin, "Cannot delete the last admin user")

	// Authentication errors
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "Unauthorized access")
	ErrInvalidToken = NewDomainError(CodeInvalidToken, "Invalid token")
	ErrForbidden    = NewDomainError(CodeForbidden, "Admin access required")

	// Validation errors
	ErrPasswordTooShort = NewDomainError(CodeInvalidInput, "Password must be at least 8 characters long")

	// File errors
	ErrNoFileProvided  = NewDomainError(CodeInvalidInput, "No file provided")
	ErrNoFileSelected  = NewDomainError(CodeInvalidInput, "No file selected")
	ErrInvalidFileType = NewDomainError(CodeInvalidFileType, "File type not allowed")
	ErrInvalidFilePath = NewDomainError(CodeInvalidInput, "Invalid file path")
	ErrFileNotFound    = NewDomainError(CodeFileNotFound, "File not found")
	ErrPayloadTooLarge = NewDomainError(CodePayloadTooLarge, "File too large")

	// System errors
	ErrInternal = NewDomainError(CodeInternal, "Internal server error")
)

// IsInternal reports whether err is unexpected, i.e. not a known domain
// error or explicitly wrapped as INTERNAL_ERROR.
func IsInternal(err error) bool {
	return ToHTTPStatus(err) >= http.StatusInternalServerError
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	// Check if it's a domain error
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case CodeInvalidInput, CodeEmailExists, CodeLastAdmin, CodeInvalidFileType:
		return http.StatusBadRequest

	// 401 Unauthorized
	case CodeUnauthorized, CodeInvalidCredentials, CodeInvalidToken, CodeAccountInactive:
		return http.StatusUnauthorized

	// 403 Forbidden
	case CodeForbidden:
		return http.StatusForbidden

	// 404 Not Found
	case CodeUserNotFound, CodeFileNotFound:
		return http.StatusNotFound

	// 413 Request Entity Too Large
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage returns the caller-facing message of a domain error.
// Unknown errors yield fallback so internal details never leak.
func GetErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Code != CodeInternal {
		return domainErr.Message
	}

	return fallback
}
