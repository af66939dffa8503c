package services

import (
	"context"
	"log/slog"
	"time"

	"jamqueuepro/internal/domain"
)

type activityRecorder struct {
	repo      domain.ActivityRepository
	publisher domain.ActivityPublisher
	logger    *slog.Logger
}

// NewActivityRecorder creates an ActivityRecorder that appends to the audit
// log and mirrors entries to the publisher for downstream analytics.
// publisher may be nil when no broker is configured.
func NewActivityRecorder(repo domain.ActivityRepository, publisher domain.ActivityPublisher, logger *slog.Logger) domain.ActivityRecorder {
	return &activityRecorder{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Record is best-effort: an audit write must never fail the request that
// triggered it.
func (r *activityRecorder) Record(ctx context.Context, action string, userID, eventID *string, detail string) {
	entry := &domain.ActivityEntry{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "activity append failed", "action", action, "err", err)
		return
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, entry); err != nil {
			r.logger.WarnContext(ctx, "activity publish failed", "action", action, "err", err)
		}
	}
}
