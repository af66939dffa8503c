package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateSong marks a title+artist pair already present in the user's library.
var ErrDuplicateSong = errors.New("song already in library")

// Song is an entry in a user's private song library.
// swagger:model Song
type Song struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Instrument *string   `json:"instrument,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SongRepository defines the interface for song library storage
type SongRepository interface {
	Create(ctx context.Context, song *Song) error
	GetByID(ctx context.Context, id string) (*Song, error)
	ListByUserID(ctx context.Context, userID string) ([]*Song, error)
	Update(ctx context.Context, song *Song) error
	Delete(ctx context.Context, id string) error
}

// SongService defines per-user song library management. All operations act on
// the requester's own library.
type SongService interface {
	Add(ctx context.Context, userID, title, artist string, instrument *string) (*Song, error)
	List(ctx context.Context, userID string) ([]*Song, error)
	Update(ctx context.Context, requesterID, songID, title, artist string, instrument *string) (*Song, error)
	Remove(ctx context.Context, requesterID, songID string) error
}
