package bookstore

import (
	"fmt"
	"net/http"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

// APIError is a non-2xx response from the API. It unwraps to the sentinel error
// matching its status, so callers can test with errors.Is(err, apperrors.ErrNotFound).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthenticated
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrInvalidInput
	case http.StatusConflict:
		return apperrors.ErrConflict
	default:
		if e.StatusCode >= 500 {
			return apperrors.ErrInternal
		}
		return nil
	}
}

// ValidationError is returned before any request is sent when an argument is
// obviously unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return apperrors.ErrInvalidInput }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
