package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// statuses; services wrap infrastructure failures with fmt.Errorf("%w", ...).
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// Sign-up queue rejections. These are legitimate business outcomes, never
	// retried internally.
	ErrAlreadySignedUp  = errors.New("already signed up for this event")
	ErrCapacityExceeded = errors.New("event is full")
	ErrDeadlinePassed   = errors.New("signups are closed for this event")

	// ErrStorageUnavailable marks transient persistence failures. Callers may
	// retry the whole operation; the (event_id, user_id) constraint makes a
	// retried signup safe.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
