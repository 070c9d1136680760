package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the remote service's error shape. Every failure of a client call
// is an *Error: structured responses carry the server's message and HTTP
// status, transport failures are normalized to a generic message with
// status 500.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`

	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Transport reports whether the error came from the transport layer rather
// than a structured response.
func (e *Error) Transport() bool {
	return e.cause != nil
}

func transportError(err error) *Error {
	return &Error{
		Message: "network error occurred",
		Status:  http.StatusInternalServerError,
		cause:   err,
	}
}

// IsStatus reports whether err is a remote error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Message extracts the remote error message, or falls back when err carries
// none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
