package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"jamqueuepro/internal/domain"
)

const (
	uniqueViolation       = "23505"
	signupUserConstraint  = "signups_event_user_key"
	positionConstraint    = "signups_event_position_key"
	createPositionRetries = 1
)

type signupRepository struct {
	DB *sql.DB
}

func NewSignupRepository(db *sql.DB) domain.SignupRepository {
	return &signupRepository{
		DB: db,
	}
}

// CreateWithNextPosition assigns the next queue position and inserts the
// signup in one transaction. The event row is locked first so that the
// capacity check, membership check, MAX(queue_position) read, and insert are
// serialized per event; concurrent requests for the same event queue up on
// the lock. The unique constraints catch anything that slips past the lock:
// a duplicate (event, user) maps to ErrAlreadySignedUp, and a position
// collision is retried once before giving up.
func (r *signupRepository) CreateWithNextPosition(ctx context.Context, s *domain.Signup) error {
	var err error
	for attempt := 0; attempt <= createPositionRetries; attempt++ {
		err = r.createWithNextPosition(ctx, s)
		if !isPositionConflict(err) {
			return err
		}
	}
	return fmt.Errorf("queue position conflict persisted after retry: %w", err)
}

func (r *signupRepository) createWithNextPosition(ctx context.Context, s *domain.Signup) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var capacity sql.NullInt64
	err = tx.QueryRowContext(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, s.EventID).
		Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if capacity.Valid {
		var count int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM signups WHERE event_id = $1`, s.EventID).
			Scan(&count); err != nil {
			return err
		}
		if count >= capacity.Int64 {
			return domain.ErrCapacityExceeded
		}
	}

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM signups WHERE event_id = $1 AND user_id = $2)`,
		s.EventID, s.UserID,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadySignedUp
	}

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(queue_position), 0) + 1 FROM signups WHERE event_id = $1`,
		s.EventID,
	).Scan(&next); err != nil {
		return err
	}

	query := `
		INSERT INTO signups (event_id, user_id, queue_position, instruments, notes, signup_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		s.EventID, s.UserID, next, pq.Array(s.Instruments), s.Notes, s.SignupTime,
	).Scan(&s.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == uniqueViolation && perr.Constraint == signupUserConstraint {
			return domain.ErrAlreadySignedUp
		}
		return err
	}
	s.QueuePosition = next

	return tx.Commit()
}

func isPositionConflict(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == uniqueViolation && perr.Constraint == positionConstraint
}

func (r *signupRepository) GetByID(ctx context.Context, id string) (*domain.Signup, error) {
	query := `
		SELECT id, event_id, user_id, queue_position, instruments, notes, signup_time
		FROM signups
		WHERE id = $1
	`
	return scanSignup(r.DB.QueryRowContext(ctx, query, id))
}

func (r *signupRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Signup, error) {
	query := `
		SELECT id, event_id, user_id, queue_position, instruments, notes, signup_time
		FROM signups
		WHERE event_id = $1 AND user_id = $2
	`
	return scanSignup(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *signupRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Signup, error) {
	query := `
		SELECT id, event_id, user_id, queue_position, instruments, notes, signup_time
		FROM signups
		WHERE event_id = $1
		ORDER BY queue_position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signups := make([]*domain.Signup, 0)
	for rows.Next() {
		s := &domain.Signup{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.UserID, &s.QueuePosition,
			pq.Array(&s.Instruments), &s.Notes, &s.SignupTime); err != nil {
			return nil, err
		}
		signups = append(signups, s)
	}
	return signups, rows.Err()
}

func (r *signupRepository) UpdateDetails(ctx context.Context, id string, instruments []string, notes string) (*domain.Signup, error) {
	query := `
		UPDATE signups SET instruments = $2, notes = $3
		WHERE id = $1
		RETURNING id, event_id, user_id, queue_position, instruments, notes, signup_time
	`
	return scanSignup(r.DB.QueryRowContext(ctx, query, id, pq.Array(instruments), notes))
}

func (r *signupRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM signups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSignup(row *sql.Row) (*domain.Signup, error) {
	s := &domain.Signup{}
	err := row.Scan(&s.ID, &s.EventID, &s.UserID, &s.QueuePosition,
		pq.Array(&s.Instruments), &s.Notes, &s.SignupTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
