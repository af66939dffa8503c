package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jamqueuepro/internal/domain"
)

type songService struct {
	songRepo domain.SongRepository
}

// NewSongService creates a SongService over the given repository.
func NewSongService(songRepo domain.SongRepository) domain.SongService {
	return &songService{songRepo: songRepo}
}

func (s *songService) Add(ctx context.Context, userID, title, artist string, instrument *string) (*domain.Song, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" || artist == "" {
		return nil, fmt.Errorf("%w: title and artist are required", domain.ErrInvalidInput)
	}
	now := time.Now()
	song := &domain.Song{
		UserID:     userID,
		Title:      title,
		Artist:     artist,
		Instrument: instrument,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.songRepo.Create(ctx, song); err != nil {
		if errors.Is(err, domain.ErrDuplicateSong) {
			return nil, domain.ErrDuplicateSong
		}
		return nil, fmt.Errorf("create song: %w", err)
	}
	return song, nil
}

func (s *songService) List(ctx context.Context, userID string) ([]*domain.Song, error) {
	songs, err := s.songRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return songs, nil
}

func (s *songService) Update(ctx context.Context, requesterID, songID, title, artist string, instrument *string) (*domain.Song, error) {
	song, err := s.songRepo.GetByID(ctx, songID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get song: %w", err)
	}
	if song.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" || artist == "" {
		return nil, fmt.Errorf("%w: title and artist are required", domain.ErrInvalidInput)
	}
	song.Title = title
	song.Artist = artist
	song.Instrument = instrument
	if err := s.songRepo.Update(ctx, song); err != nil {
		if errors.Is(err, domain.ErrDuplicateSong) {
			return nil, domain.ErrDuplicateSong
		}
		return nil, fmt.Errorf("update song: %w", err)
	}
	return s.songRepo.GetByID(ctx, songID)
}

func (s *songService) Remove(ctx context.Context, requesterID, songID string) error {
	song, err := s.songRepo.GetByID(ctx, songID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get song: %w", err)
	}
	if song.UserID != requesterID {
		return domain.ErrForbidden
	}
	return s.songRepo.Delete(ctx, songID)
}
