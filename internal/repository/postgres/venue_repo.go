package postgres

import (
	"context"
	"database/sql"
	"errors"

	"jamqueuepro/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, address, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var desc sql.NullString
	if v.Description != nil {
		desc = sql.NullString{String: *v.Description, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		v.Name, v.Address, desc, v.OwnerID, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, name, address, description, owner_id, created_at, updated_at
		FROM venues
		WHERE id = $1
	`
	v := &domain.Venue{}
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.Name, &v.Address, &desc, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if desc.Valid {
		s := desc.String
		v.Description = &s
	}
	return v, nil
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	query := `
		SELECT id, name, address, description, owner_id, created_at, updated_at
		FROM venues
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		var desc sql.NullString
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &desc, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			s := desc.String
			v.Description = &s
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	query := `
		UPDATE venues SET name = $2, address = $3, description = $4, updated_at = NOW()
		WHERE id = $1
	`
	var desc sql.NullString
	if v.Description != nil {
		desc = sql.NullString{String: *v.Description, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx, query, v.ID, v.Name, v.Address, desc)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
