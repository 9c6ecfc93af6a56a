package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps network-level failures (DNS, refused connection,
	// timeout). Retried only by the next scheduled trigger, never inside
	// the same call.
	ErrTransport = errors.New("transport failure")

	// ErrUnauthorized is the 401 case of [HTTPError], split out because
	// the auth session reacts to it specifically.
	ErrUnauthorized = errors.New("unauthorized")
)

// HTTPError is a non-2xx response from the remote. Status and Body are
// kept verbatim for operator display; the body never contains secrets
// (the remote echoes request metadata, not credentials).
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// Is makes 401 HTTPErrors match [ErrUnauthorized] under errors.Is.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}
