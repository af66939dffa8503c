package domain

import (
	"context"
	"time"
)

// Event represents a scheduled jam session at a venue.
//
// Capacity and SignupDeadline are the sign-up queue's constraint inputs:
// nil capacity means unlimited, nil deadline means signups never close.
// Both may be changed by the organizer at any time; the queue reads a fresh
// snapshot per operation and never caches them.
// swagger:model Event
type Event struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	VenueID        string     `json:"venue_id"`
	OrganizerID    string     `json:"organizer_id"`
	Capacity       *int       `json:"capacity,omitempty"`
	SignupDeadline *time.Time `json:"signup_deadline,omitempty"`
	DateTime       time.Time  `json:"date_time"`
	Description    *string    `json:"description,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event. ID is typically set by the repository on create.
func NewEvent(name, venueID, organizerID string, dateTime time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		VenueID:     venueID,
		OrganizerID: organizerID,
		DateTime:    dateTime,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventUpdate holds the mutable event fields for a partial update.
// Nil fields are left untouched; ClearCapacity/ClearDeadline reset a field to
// null (unlimited / no deadline).
type EventUpdate struct {
	Name           *string
	Capacity       *int
	ClearCapacity  bool
	SignupDeadline *time.Time
	ClearDeadline  bool
	DateTime       *time.Time
	Description    *string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	Update(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines organizer-facing event management.
type EventService interface {
	Create(ctx context.Context, organizerID string, event *Event) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, requesterID, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, requesterID, eventID string) error
}
