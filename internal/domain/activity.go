package domain

import (
	"context"
	"time"
)

// Activity actions recorded in the audit log.
const (
	ActivityUserCreated     = "user_created"
	ActivityUserLogin       = "user_login"
	ActivityEventCreated    = "event_created"
	ActivityEventDeleted    = "event_deleted"
	ActivitySignupCreated   = "signup_created"
	ActivitySignupRejected  = "signup_rejected"
	ActivitySignupCancelled = "signup_cancelled"
)

// ActivityEntry is one audit log row.
// swagger:model ActivityEntry
type ActivityEntry struct {
	ID        int64     `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	EventID   *string   `json:"event_id,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityDayStat aggregates actions for one calendar day.
type ActivityDayStat struct {
	Day           time.Time `json:"day"`
	Signups       int       `json:"signups"`
	Cancellations int       `json:"cancellations"`
	Rejections    int       `json:"rejections"`
	Logins        int       `json:"logins"`
}

// EventActivityStat aggregates signup activity for one event.
type EventActivityStat struct {
	EventID       string `json:"event_id"`
	EventName     string `json:"event_name"`
	Signups       int    `json:"signups"`
	Cancellations int    `json:"cancellations"`
}

// ActivityReport is the admin analytics report for a date range.
// swagger:model ActivityReport
type ActivityReport struct {
	From   time.Time            `json:"from"`
	To     time.Time            `json:"to"`
	Days   []*ActivityDayStat   `json:"days"`
	Events []*EventActivityStat `json:"events"`
}

// ActivityRepository defines audit log storage and reporting queries.
type ActivityRepository interface {
	Append(ctx context.Context, entry *ActivityEntry) error
	List(ctx context.Context, p PaginationParams) ([]*ActivityEntry, int, error)
	Report(ctx context.Context, from, to time.Time) (*ActivityReport, error)
}

// ActivityPublisher pushes activity entries to an external broker for
// downstream analytics. Implementations must not block request handling on
// broker availability.
type ActivityPublisher interface {
	Publish(ctx context.Context, entry *ActivityEntry) error
}

// ActivityRecorder appends audit entries. Recording is best-effort: failures
// are logged, never surfaced to the caller's request.
type ActivityRecorder interface {
	Record(ctx context.Context, action string, userID, eventID *string, detail string)
}
