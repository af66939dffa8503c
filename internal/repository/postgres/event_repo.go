package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jamqueuepro/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, name, venue_id, organizer_id, capacity, signup_deadline, date_time, description, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, venue_id, organizer_id, capacity, signup_deadline, date_time, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var capacity sql.NullInt64
	if e.Capacity != nil {
		capacity = sql.NullInt64{Int64: int64(*e.Capacity), Valid: true}
	}
	var deadline sql.NullTime
	if e.SignupDeadline != nil {
		deadline = sql.NullTime{Time: *e.SignupDeadline, Valid: true}
	}
	var desc sql.NullString
	if e.Description != nil {
		desc = sql.NullString{String: *e.Description, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.VenueID, e.OrganizerID, capacity, deadline, e.DateTime, desc, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date_time ASC`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY date_time ASC`
	return r.queryEvents(ctx, query, organizerID)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var capacity sql.NullInt64
		var deadline sql.NullTime
		var desc sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.VenueID, &e.OrganizerID,
			&capacity, &deadline, &e.DateTime, &desc, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		applyEventNulls(e, capacity, deadline, desc)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.ClearCapacity {
		setClauses = append(setClauses, "capacity = NULL")
	} else if upd.Capacity != nil {
		setClauses = append(setClauses, fmt.Sprintf("capacity = $%d", n))
		args = append(args, *upd.Capacity)
		n++
	}
	if upd.ClearDeadline {
		setClauses = append(setClauses, "signup_deadline = NULL")
	} else if upd.SignupDeadline != nil {
		setClauses = append(setClauses, fmt.Sprintf("signup_deadline = $%d", n))
		args = append(args, *upd.SignupDeadline)
		n++
	}
	if upd.DateTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("date_time = $%d", n))
		args = append(args, *upd.DateTime)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var capacity sql.NullInt64
	var deadline sql.NullTime
	var desc sql.NullString
	err := row.Scan(&e.ID, &e.Name, &e.VenueID, &e.OrganizerID,
		&capacity, &deadline, &e.DateTime, &desc, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	applyEventNulls(e, capacity, deadline, desc)
	return e, nil
}

func applyEventNulls(e *domain.Event, capacity sql.NullInt64, deadline sql.NullTime, desc sql.NullString) {
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}
	if deadline.Valid {
		d := deadline.Time
		e.SignupDeadline = &d
	}
	if desc.Valid {
		s := desc.String
		e.Description = &s
	}
}
