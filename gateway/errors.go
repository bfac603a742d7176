package gateway

import (
	"errors"
	"fmt"

	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

// ErrNoBaseURL is returned by New when no API base URL is given.
var ErrNoBaseURL = errors.New("gateway: api base url is required")

// RefreshError describes a failed session renewal. StatusCode is zero when the
// renewal call never produced a response (transport error or timeout).
type RefreshError struct {
	StatusCode int
	Err        error
}

func (e *RefreshError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("session refresh failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("session refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

func rejected(status int) *RefreshError {
	return &RefreshError{StatusCode: status, Err: apperrors.ErrSessionExpired}
}
