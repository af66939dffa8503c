package domain

import (
	"context"
	"time"
)

// Venue represents a place that hosts jam-session events.
// swagger:model Venue
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description *string   `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewVenue returns a new Venue. ID is typically set by the repository on create.
func NewVenue(name, address string, description *string, ownerID string, createdAt, updatedAt time.Time) *Venue {
	return &Venue{
		Name:        name,
		Address:     address,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// VenueRepository defines the interface for venue storage
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Update(ctx context.Context, venue *Venue) error
	Delete(ctx context.Context, id string) error
}

// VenueService defines organizer-facing venue management. Writes are
// owner-checked; reads are open to any authenticated user.
type VenueService interface {
	Create(ctx context.Context, ownerID, name, address string, description *string) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Update(ctx context.Context, requesterID string, venue *Venue) (*Venue, error)
	Delete(ctx context.Context, requesterID, venueID string) error
}
