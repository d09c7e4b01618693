package api

import (
	"fmt"
	"net/http"

	"github.com/wheelsapp/wheels-cli/internal/common"
)

// Error is a non-2xx backend response. Message is the backend-supplied
// human-readable text when present, otherwise the HTTP status text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// Unwrap maps well-known statuses to the shared sentinel errors so callers
// can use errors.Is without depending on HTTP codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	}
	return nil
}

func newError(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Status: status, Message: message}
}
