package backend

import (
	"errors"
	"fmt"
)

// Error kinds returned by the client. Callers match them with errors.Is.
var (
	// ErrTransport means no response was received.
	ErrTransport = errors.New("backend unreachable")
	// ErrStatus means the backend answered with a non-success status.
	ErrStatus = errors.New("backend returned an error status")
	// ErrMalformed means the response body could not be interpreted.
	ErrMalformed = errors.New("backend response malformed")
	// ErrForeignLink means a hypermedia link points outside the backend origin.
	ErrForeignLink = errors.New("link outside backend origin")
	// ErrResetRejected means the reset endpoint answered without confirming.
	ErrResetRejected = errors.New("reset not confirmed")
	// ErrInvalidBaseURL is returned by New for a base that is not absolute.
	ErrInvalidBaseURL = errors.New("invalid backend base url")
)

// StatusError carries the upstream status of an ErrStatus failure.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrStatus) match.
func (e *StatusError) Unwrap() error { return ErrStatus }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == 404
}
