package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates the remote API rejected the current
	// credential; the session must be invalidated.
	ErrUnauthorized = errors.New("credential rejected")
	// ErrUnavailable indicates a transient network or server failure; the
	// operation may be retried by the user without side effects.
	ErrUnavailable = errors.New("service unavailable")
)
