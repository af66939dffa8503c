package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jamqueuepro/internal/domain"
	"jamqueuepro/internal/metrics"
)

type signupQueueService struct {
	eventRepo  domain.EventRepository
	signupRepo domain.SignupRepository
	activity   domain.ActivityRecorder
	now        func() time.Time
}

// NewSignupQueueService creates the event sign-up queue service.
func NewSignupQueueService(
	eventRepo domain.EventRepository,
	signupRepo domain.SignupRepository,
	activity domain.ActivityRecorder,
) domain.SignupQueueService {
	return &signupQueueService{
		eventRepo:  eventRepo,
		signupRepo: signupRepo,
		activity:   activity,
		now:        time.Now,
	}
}

// RequestSignup checks preconditions in a fixed order so each rejection is
// distinct: event existence, deadline, capacity, membership. The deadline is
// evaluated here against a fresh event snapshot; capacity, membership, and
// position assignment happen inside the repository transaction that holds the
// event row lock, so concurrent requests for the same event serialize there.
func (s *signupQueueService) RequestSignup(ctx context.Context, eventID, userID string, instruments []string, notes string) (*domain.Signup, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get event", err)
	}

	if event.SignupDeadline != nil && s.now().After(*event.SignupDeadline) {
		s.recordRejection(ctx, userID, eventID, "deadline passed")
		return nil, domain.ErrDeadlinePassed
	}

	signup := domain.NewSignup(eventID, userID, instruments, notes, s.now())
	if err := s.signupRepo.CreateWithNextPosition(ctx, signup); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrCapacityExceeded):
			s.recordRejection(ctx, userID, eventID, "capacity exceeded")
			return nil, domain.ErrCapacityExceeded
		case errors.Is(err, domain.ErrAlreadySignedUp):
			s.recordRejection(ctx, userID, eventID, "already signed up")
			return nil, domain.ErrAlreadySignedUp
		default:
			return nil, storageErr("create signup", err)
		}
	}

	metrics.SignupsAccepted.Inc()
	s.activity.Record(ctx, domain.ActivitySignupCreated, &userID, &eventID,
		fmt.Sprintf("position %d", signup.QueuePosition))
	return signup, nil
}

// CancelSignup deletes the caller's signup. Positions of the remaining
// signups are left as they are; the queue tolerates gaps.
func (s *signupQueueService) CancelSignup(ctx context.Context, signupID, requesterID string) error {
	signup, err := s.signupRepo.GetByID(ctx, signupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageErr("get signup", err)
	}
	if signup.UserID != requesterID {
		return domain.ErrForbidden
	}
	if err := s.signupRepo.Delete(ctx, signupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageErr("delete signup", err)
	}

	metrics.SignupsCancelled.Inc()
	s.activity.Record(ctx, domain.ActivitySignupCancelled, &requesterID, &signup.EventID,
		fmt.Sprintf("position %d freed", signup.QueuePosition))
	return nil
}

func (s *signupQueueService) ListSignups(ctx context.Context, eventID string) ([]*domain.Signup, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get event", err)
	}
	signups, err := s.signupRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, storageErr("list signups", err)
	}
	return signups, nil
}

func (s *signupQueueService) Position(ctx context.Context, eventID, userID string) (*domain.Signup, error) {
	signup, err := s.signupRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get signup", err)
	}
	return signup, nil
}

func (s *signupQueueService) UpdateSignupDetails(ctx context.Context, signupID, requesterID string, instruments []string, notes string) (*domain.Signup, error) {
	signup, err := s.signupRepo.GetByID(ctx, signupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get signup", err)
	}
	if signup.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	updated, err := s.signupRepo.UpdateDetails(ctx, signupID, instruments, notes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("update signup", err)
	}
	return updated, nil
}

func (s *signupQueueService) recordRejection(ctx context.Context, userID, eventID, reason string) {
	metrics.SignupsRejected.Inc()
	s.activity.Record(ctx, domain.ActivitySignupRejected, &userID, &eventID, reason)
}

// storageErr wraps an infrastructure failure so controllers can map it to a
// retryable status while keeping the cause in the log line.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}
