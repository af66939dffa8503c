package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"jamqueuepro/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestSongRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	guitar := "guitar"

	tests := []struct {
		name    string
		song    *domain.Song
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			song: &domain.Song{UserID: "user-1", Title: "Little Wing", Artist: "Jimi Hendrix", Instrument: &guitar, CreatedAt: ts, UpdatedAt: ts},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO songs \(user_id, title, artist, instrument, created_at, updated_at\)`).
					WithArgs("user-1", "Little Wing", "Jimi Hendrix", sql.NullString{String: "guitar", Valid: true}, ts, ts).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("song-1"))
			},
		},
		{
			name: "duplicate title and artist",
			song: &domain.Song{UserID: "user-1", Title: "Little Wing", Artist: "Jimi Hendrix", CreatedAt: ts, UpdatedAt: ts},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO songs`).
					WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "songs_user_title_artist_key"})
			},
			wantErr: domain.ErrDuplicateSong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSongRepository(db)
			err = repo.Create(ctx, tt.song)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			require.Equal(t, "song-1", tt.song.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSongRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "artist", "instrument", "created_at", "updated_at"}).
		AddRow("song-1", "user-1", "Little Wing", "Jimi Hendrix", "guitar", ts, ts).
		AddRow("song-2", "user-1", "So What", "Miles Davis", nil, ts, ts)
	mock.ExpectQuery(`SELECT id, user_id, title, artist, instrument, created_at, updated_at`).
		WithArgs("user-1").
		WillReturnRows(rows)

	repo := NewSongRepository(db)
	songs, err := repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, songs, 2)
	require.NotNil(t, songs[0].Instrument)
	require.Equal(t, "guitar", *songs[0].Instrument)
	require.Nil(t, songs[1].Instrument)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongRepository_Update_duplicate(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE songs SET title = \$2, artist = \$3, instrument = \$4, updated_at = NOW\(\)`).
		WithArgs("song-1", "So What", "Miles Davis", sql.NullString{}).
		WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "songs_user_title_artist_key"})

	repo := NewSongRepository(db)
	err = repo.Update(ctx, &domain.Song{ID: "song-1", Title: "So What", Artist: "Miles Davis"})
	require.True(t, errors.Is(err, domain.ErrDuplicateSong))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongRepository_Delete_not_found(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM songs WHERE id = \$1`).
		WithArgs("song-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSongRepository(db)
	err = repo.Delete(ctx, "song-missing")
	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
