package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jamqueuepro/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
	venueRepo domain.VenueRepository
	activity  domain.ActivityRecorder
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, venueRepo domain.VenueRepository, activity domain.ActivityRecorder) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		venueRepo: venueRepo,
		activity:  activity,
	}
}

func (s *eventService) Create(ctx context.Context, organizerID string, event *domain.Event) (*domain.Event, error) {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if event.DateTime.IsZero() {
		return nil, fmt.Errorf("%w: date_time is required", domain.ErrInvalidInput)
	}
	if event.Capacity != nil && *event.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidInput)
	}

	// The venue must exist before an event can be scheduled at it.
	if _, err := s.venueRepo.GetByID(ctx, event.VenueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: venue does not exist", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}

	now := time.Now()
	event.OrganizerID = organizerID
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.activity.Record(ctx, domain.ActivityEventCreated, &organizerID, &event.ID, event.Name)
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, requesterID, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	existing, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if existing.OrganizerID != requesterID {
		return nil, domain.ErrForbidden
	}
	if upd.Capacity != nil && *upd.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidInput)
	}
	// Capacity and deadline changes take effect on the next signup attempt;
	// existing signups are never re-validated or evicted.
	event, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, requesterID, eventID string) error {
	existing, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if existing.OrganizerID != requesterID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.activity.Record(ctx, domain.ActivityEventDeleted, &requesterID, &eventID, existing.Name)
	return nil
}
