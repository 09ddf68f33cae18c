// Package apperr defines the application error carried from the service layer
// to the HTTP and MCP surfaces.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error pairs a client-safe message with an HTTP status. Err holds the cause
// for server-side logging and is never sent to clients.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports a client input error.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// TooLarge reports a request body over the accepted size.
func TooLarge(message string) *Error {
	return &Error{Status: http.StatusRequestEntityTooLarge, Message: message}
}

// Internal reports a server-side failure with a generic message.
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Public returns the status and message that may be shown to a client for
// err. Errors outside this package map to 500 with fallback.
func Public(err error, fallback string) (int, string) {
	if appErr, ok := As(err); ok {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, fallback
}
