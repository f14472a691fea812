package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNoCoordinates      = errors.New("no coordinates found")
	ErrMissingCredentials = errors.New("missing database credentials (PGPASS or PGUID)")
	ErrBadStatus          = errors.New("bad status")
)

// StatusError is returned for any non-success HTTP status that has no sentinel.
// It matches ErrBadStatus with errors.Is.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status %d", e.Code)
	}
	return fmt.Sprintf("bad status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrBadStatus }
