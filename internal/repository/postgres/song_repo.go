package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"jamqueuepro/internal/domain"
)

type songRepository struct {
	DB *sql.DB
}

func NewSongRepository(db *sql.DB) domain.SongRepository {
	return &songRepository{DB: db}
}

func (r *songRepository) Create(ctx context.Context, s *domain.Song) error {
	query := `
		INSERT INTO songs (user_id, title, artist, instrument, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var instrument sql.NullString
	if s.Instrument != nil {
		instrument = sql.NullString{String: *s.Instrument, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		s.UserID, s.Title, s.Artist, instrument, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == uniqueViolation {
			return domain.ErrDuplicateSong
		}
		return err
	}
	return nil
}

func (r *songRepository) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	query := `
		SELECT id, user_id, title, artist, instrument, created_at, updated_at
		FROM songs
		WHERE id = $1
	`
	s := &domain.Song{}
	var instrument sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.UserID, &s.Title, &s.Artist, &instrument, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if instrument.Valid {
		v := instrument.String
		s.Instrument = &v
	}
	return s, nil
}

func (r *songRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Song, error) {
	query := `
		SELECT id, user_id, title, artist, instrument, created_at, updated_at
		FROM songs
		WHERE user_id = $1
		ORDER BY artist, title
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	songs := make([]*domain.Song, 0)
	for rows.Next() {
		s := &domain.Song{}
		var instrument sql.NullString
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.Artist, &instrument, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if instrument.Valid {
			v := instrument.String
			s.Instrument = &v
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func (r *songRepository) Update(ctx context.Context, s *domain.Song) error {
	query := `
		UPDATE songs SET title = $2, artist = $3, instrument = $4, updated_at = NOW()
		WHERE id = $1
	`
	var instrument sql.NullString
	if s.Instrument != nil {
		instrument = sql.NullString{String: *s.Instrument, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx, query, s.ID, s.Title, s.Artist, instrument)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == uniqueViolation {
			return domain.ErrDuplicateSong
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *songRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
