package service

import (
	"errors"
	"fmt"

	"github.com/cookievault/go-cookie-vault/internal/adapter"
)

var (
	// ErrNotConfigured is returned by operations that need remote access
	// before the endpoint, credentials, and passphrase are all set.
	ErrNotConfigured = errors.New("cookie vault is not configured")
)

// AuthError means authentication failed outright: the refresh grant (if
// one was attempted) and the password grant were both rejected. Status and
// Body carry the final grant response for operator display; credentials
// are never included.
type AuthError struct {
	Status int
	Body   string

	cause error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("authentication failed: http %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("authentication failed: %v", e.cause)
}

func (e *AuthError) Unwrap() error {
	return e.cause
}

// newAuthError builds an *AuthError from the failed grant's error,
// extracting status and body when the remote answered at all.
func newAuthError(err error) *AuthError {
	authErr := &AuthError{cause: err}

	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		authErr.Status = httpErr.Status
		authErr.Body = httpErr.Body
	}

	return authErr
}
