package steamworkshop

import (
	"errors"
	"fmt"
)

// Error codes carried by [Error.Code].
const (
	CodeTransport    = "TRANSPORT"
	CodeHTTPStatus   = "HTTP_STATUS"
	CodeDecode       = "DECODE"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeNotFound     = "NOT_FOUND"
	CodeBadRequest   = "BAD_REQUEST"
	CodeTimeout      = "TIMEOUT"
	CodeSteamResult  = "STEAM_RESULT"
)

// Error represents a failed Steam Workshop API call.
//
// Status holds the HTTP status code when Steam answered, and zero when the
// failure happened before or instead of a response.
type Error struct {
	Code    string
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("steamworkshop: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("steamworkshop: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code, so the
// sentinels below work with errors.Is:
//
//	if errors.Is(err, steamworkshop.ErrAuthRequired) {
//	    // set an API key first
//	}
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinel errors.
var (
	ErrTransport    = &Error{Code: CodeTransport, Message: "request could not be sent"}
	ErrHTTPStatus   = &Error{Code: CodeHTTPStatus, Message: "unexpected HTTP status"}
	ErrDecode       = &Error{Code: CodeDecode, Message: "response did not match the expected shape"}
	ErrAuthRequired = &Error{Code: CodeAuthRequired, Message: "an API key is required", Status: 401}
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "published file not found", Status: 404}
	ErrBadRequest   = &Error{Code: CodeBadRequest, Message: "invalid request", Status: 400}
	ErrTimeout      = &Error{Code: CodeTimeout, Message: "request timed out", Status: 408}
	ErrSteamResult  = &Error{Code: CodeSteamResult, Message: "steam reported a failure"}
)

func newError(code, message string, status int, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
		Cause:   cause,
	}
}

// errAuthRequired is returned by operations that need a key, before any
// request is built.
func errAuthRequired(operation string) *Error {
	return newError(CodeAuthRequired, operation+" requires an API key, use WithAPIKey", 0, nil)
}
