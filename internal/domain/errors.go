package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation ErrKind = "validation" // 400
	KindAuth       ErrKind = "auth"       // 401
	KindForbidden  ErrKind = "forbidden"  // 403
	KindNotFound   ErrKind = "not_found"  // 404
	KindConflict   ErrKind = "conflict"   // 409
	KindInternal   ErrKind = "internal"   // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code carried in the response envelope
// - Message: safe summary for clients
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// Is reports whether err carries the given wire code.
func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidContentType() *Error {
	return New(KindValidation, "INVALID_CONTENT_TYPE", "Content-Type must be application/json")
}

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "INVALID_JSON", "Invalid JSON in request body", cause)
}

func ErrMissingFields(fields string) *Error {
	return New(KindValidation, "MISSING_FIELDS", "Missing required fields: "+fields)
}

func ErrInvalidLogin() *Error {
	return New(KindValidation, "INVALID_LOGIN", "Login must be 3-50 characters of letters, digits or underscore")
}

func ErrInvalidPassword(reason string) *Error {
	return New(KindValidation, "INVALID_PASSWORD", "Invalid password: "+reason)
}

func ErrMissingToken() *Error {
	return New(KindValidation, "MISSING_TOKEN", "Refresh token is required")
}

func ErrMissingQuery() *Error {
	return New(KindValidation, "MISSING_QUERY", "Search query is required")
}

func ErrEmptyMessage() *Error {
	return New(KindValidation, "EMPTY_MESSAGE", "Message text cannot be empty")
}

func ErrMessageTooLong(maxLen int) *Error {
	return New(KindValidation, "MESSAGE_TOO_LONG", fmt.Sprintf("Message text exceeds %d characters", maxLen))
}

func ErrSelfMessage() *Error {
	return New(KindValidation, "SELF_MESSAGE", "Cannot send message to yourself")
}

func ErrEmptyMessageIDs() *Error {
	return New(KindValidation, "EMPTY_MESSAGE_IDS", "message_ids must be a non-empty array")
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: used for login failures to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "INVALID_CREDENTIALS", "Invalid login or password")
}

func ErrInvalidToken() *Error {
	return New(KindAuth, "INVALID_TOKEN", "Invalid or expired access token")
}

func ErrInvalidRefreshToken() *Error {
	return New(KindAuth, "INVALID_REFRESH_TOKEN", "Invalid or expired refresh token")
}

// ----------------------
// Forbidden (403)
// ----------------------

// Wrong current password on password change. Shares the INVALID_PASSWORD code
// with the weak-password validation error; the status distinguishes them.
func ErrWrongPassword() *Error {
	return New(KindForbidden, "INVALID_PASSWORD", "Current password is incorrect")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "USER_NOT_FOUND", "User not found")
}

func ErrEndpointNotFound() *Error {
	return New(KindNotFound, "ENDPOINT_NOT_FOUND", "Endpoint not found")
}

// ----------------------
// Conflict (409)
// ----------------------

func ErrLoginExists() *Error {
	return New(KindConflict, "LOGIN_EXISTS", "Login already exists")
}

// ----------------------
// Internal (500)
// ----------------------

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "INTERNAL_ERROR", "Internal server error", cause)
}

// ErrQuery wraps a store/driver failure. Clients see a plain 500; the cause
// stays in the logs.
func ErrQuery(cause error) *Error {
	return Wrap(KindInternal, "INTERNAL_ERROR", "Internal server error", cause)
}
