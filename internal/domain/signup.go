package domain

import (
	"context"
	"time"
)

// Signup is a performer's place in an event's queue.
//
// QueuePosition is unique within the event and assigned in arrival order
// starting at 1. Positions are not renumbered after a cancellation, so the
// sequence may become sparse; relative order is what matters for display.
// swagger:model Signup
type Signup struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	QueuePosition int       `json:"queue_position"`
	Instruments   []string  `json:"instruments"`
	Notes         string    `json:"notes"`
	SignupTime    time.Time `json:"signup_time"`
}

// NewSignup returns a Signup without an ID or position; both are assigned by
// the repository when the signup is accepted into the queue.
func NewSignup(eventID, userID string, instruments []string, notes string, signupTime time.Time) *Signup {
	return &Signup{
		EventID:     eventID,
		UserID:      userID,
		Instruments: instruments,
		Notes:       notes,
		SignupTime:  signupTime,
	}
}

// SignupRepository defines storage operations for event signups.
//
// CreateWithNextPosition must serialize the capacity check, membership check,
// position computation, and insert per event (row lock on the event), and
// return ErrNotFound when the event is gone, ErrCapacityExceeded when the
// event is full, or ErrAlreadySignedUp when (event, user) already holds an
// active signup.
type SignupRepository interface {
	CreateWithNextPosition(ctx context.Context, signup *Signup) error
	GetByID(ctx context.Context, id string) (*Signup, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Signup, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Signup, error)
	UpdateDetails(ctx context.Context, id string, instruments []string, notes string) (*Signup, error)
	Delete(ctx context.Context, id string) error
}

// SignupQueueService is the event sign-up queue: it accepts or rejects
// sign-up requests, assigns ordering, exposes the ordered list, and processes
// cancellations.
type SignupQueueService interface {
	// RequestSignup checks, in order: event exists (ErrNotFound), deadline not
	// passed (ErrDeadlinePassed), capacity not reached (ErrCapacityExceeded),
	// no existing signup for the user (ErrAlreadySignedUp). On success it
	// returns the created signup including its assigned queue position.
	RequestSignup(ctx context.Context, eventID, userID string, instruments []string, notes string) (*Signup, error)
	// CancelSignup deletes the signup after an ownership check. Remaining
	// positions are not compacted.
	CancelSignup(ctx context.Context, signupID, requesterID string) error
	// ListSignups returns the event's active signups ordered by queue position
	// ascending, or ErrNotFound when the event does not exist.
	ListSignups(ctx context.Context, eventID string) ([]*Signup, error)
	// Position returns the caller's own signup for the event, if any.
	Position(ctx context.Context, eventID, userID string) (*Signup, error)
	// UpdateSignupDetails edits instruments and notes on the caller's own
	// signup. The queue position is immutable.
	UpdateSignupDetails(ctx context.Context, signupID, requesterID string, instruments []string, notes string) (*Signup, error)
}
