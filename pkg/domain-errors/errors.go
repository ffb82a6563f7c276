package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain failure independently of transport. Handlers map
// codes to HTTP statuses; services create and match on them.
type Code string

const (
	CodeBadRequest           Code = "bad_request"
	CodeNotFound             Code = "not_found"
	CodeAuthenticationFailed Code = "authentication_failed"
	CodeUnauthorized         Code = "unauthorized"
	CodeInsufficientFunds    Code = "insufficient_funds"
	CodeInternal             Code = "internal"
)

// Error is a coded domain error with a user-presentable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New builds a domain error for the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// MessageOf extracts the user-presentable message, falling back to a generic
// one so internal details never leak to callers.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// HTTPStatus maps a domain error to a transport status code. Unknown errors
// are treated as internal.
func HTTPStatus(err error) int {
	var de *Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAuthenticationFailed, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeInsufficientFunds:
		// The request was well formed; the account state rejected it.
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
