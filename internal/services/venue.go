package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jamqueuepro/internal/domain"
)

type venueService struct {
	venueRepo domain.VenueRepository
}

// NewVenueService creates a VenueService over the given repository.
func NewVenueService(venueRepo domain.VenueRepository) domain.VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) Create(ctx context.Context, ownerID, name, address string, description *string) (*domain.Venue, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	venue := domain.NewVenue(name, address, description, ownerID, now, now)
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) List(ctx context.Context) ([]*domain.Venue, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

func (s *venueService) Update(ctx context.Context, requesterID string, venue *domain.Venue) (*domain.Venue, error) {
	existing, err := s.venueRepo.GetByID(ctx, venue.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	if existing.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}
	venue.OwnerID = existing.OwnerID
	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	return s.venueRepo.GetByID(ctx, venue.ID)
}

func (s *venueService) Delete(ctx context.Context, requesterID, venueID string) error {
	existing, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get venue: %w", err)
	}
	if existing.OwnerID != requesterID {
		return domain.ErrForbidden
	}
	return s.venueRepo.Delete(ctx, venueID)
}
