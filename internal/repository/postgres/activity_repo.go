package postgres

import (
	"context"
	"database/sql"
	"time"

	"jamqueuepro/internal/domain"
)

type activityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{DB: db}
}

func (r *activityRepository) Append(ctx context.Context, e *domain.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (user_id, event_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var userID, eventID sql.NullString
	if e.UserID != nil {
		userID = sql.NullString{String: *e.UserID, Valid: true}
	}
	if e.EventID != nil {
		eventID = sql.NullString{String: *e.EventID, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query, userID, eventID, e.Action, e.Detail, e.CreatedAt).
		Scan(&e.ID)
}

func (r *activityRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.ActivityEntry, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_log`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT id, user_id, event_id, action, detail, created_at
		FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	entries := make([]*domain.ActivityEntry, 0)
	for rows.Next() {
		e := &domain.ActivityEntry{}
		var userID, eventID sql.NullString
		if err := rows.Scan(&e.ID, &userID, &eventID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		if userID.Valid {
			v := userID.String
			e.UserID = &v
		}
		if eventID.Valid {
			v := eventID.String
			e.EventID = &v
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// Report runs the parameterized activity aggregation for the admin dashboard:
// per-day action counts plus per-event signup/cancellation totals over the
// given range.
func (r *activityRepository) Report(ctx context.Context, from, to time.Time) (*domain.ActivityReport, error) {
	report := &domain.ActivityReport{
		From:   from,
		To:     to,
		Days:   make([]*domain.ActivityDayStat, 0),
		Events: make([]*domain.EventActivityStat, 0),
	}

	dayQuery := `
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*) FILTER (WHERE action = 'signup_created'),
		       COUNT(*) FILTER (WHERE action = 'signup_cancelled'),
		       COUNT(*) FILTER (WHERE action = 'signup_rejected'),
		       COUNT(*) FILTER (WHERE action = 'user_login')
		FROM activity_log
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := r.DB.QueryContext(ctx, dayQuery, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		d := &domain.ActivityDayStat{}
		if err := rows.Scan(&d.Day, &d.Signups, &d.Cancellations, &d.Rejections, &d.Logins); err != nil {
			return nil, err
		}
		report.Days = append(report.Days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	eventQuery := `
		SELECT a.event_id, COALESCE(e.name, ''),
		       COUNT(*) FILTER (WHERE a.action = 'signup_created'),
		       COUNT(*) FILTER (WHERE a.action = 'signup_cancelled')
		FROM activity_log a
		LEFT JOIN events e ON e.id = a.event_id
		WHERE a.created_at >= $1 AND a.created_at < $2 AND a.event_id IS NOT NULL
		GROUP BY a.event_id, e.name
		ORDER BY 3 DESC
	`
	erows, err := r.DB.QueryContext(ctx, eventQuery, from, to)
	if err != nil {
		return nil, err
	}
	defer erows.Close()
	for erows.Next() {
		s := &domain.EventActivityStat{}
		if err := erows.Scan(&s.EventID, &s.EventName, &s.Signups, &s.Cancellations); err != nil {
			return nil, err
		}
		report.Events = append(report.Events, s)
	}
	return report, erows.Err()
}
