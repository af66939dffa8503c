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

var signupCols = []string{"id", "event_id", "user_id", "queue_position", "instruments", "notes", "signup_time"}

func TestSignupRepository_CreateWithNextPosition(t *testing.T) {
	ctx := context.Background()
	signupTime := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

	newSignup := func() *domain.Signup {
		return domain.NewSignup("ev-1", "user-1", []string{"guitar"}, "acoustic set", signupTime)
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
		wantID  string
		wantPos int
	}{
		{
			name: "success assigns next position",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(5))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM signups WHERE event_id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COALESCE\(MAX\(queue_position\), 0\) \+ 1 FROM signups`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))
				mock.ExpectQuery(`INSERT INTO signups`).
					WithArgs("ev-1", "user-1", 3, pq.Array([]string{"guitar"}), "acoustic set", signupTime).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("su-1"))
				mock.ExpectCommit()
			},
			wantID:  "su-1",
			wantPos: 3,
		},
		{
			name: "unlimited capacity skips count",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(nil))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COALESCE\(MAX\(queue_position\), 0\) \+ 1 FROM signups`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(1))
				mock.ExpectQuery(`INSERT INTO signups`).
					WithArgs("ev-1", "user-1", 1, pq.Array([]string{"guitar"}), "acoustic set", signupTime).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("su-1"))
				mock.ExpectCommit()
			},
			wantID:  "su-1",
			wantPos: 1,
		},
		{
			name: "event not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "capacity exceeded",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM signups WHERE event_id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrCapacityExceeded,
		},
		{
			name: "already signed up",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(5))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM signups WHERE event_id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrAlreadySignedUp,
		},
		{
			name: "duplicate user caught by constraint on insert",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(nil))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COALESCE\(MAX\(queue_position\), 0\) \+ 1 FROM signups`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(2))
				mock.ExpectQuery(`INSERT INTO signups`).
					WithArgs("ev-1", "user-1", 2, pq.Array([]string{"guitar"}), "acoustic set", signupTime).
					WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: signupUserConstraint})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrAlreadySignedUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSignupRepository(db)
			s := newSignup()
			err = repo.CreateWithNextPosition(ctx, s)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr))
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, s.ID)
			require.Equal(t, tt.wantPos, s.QueuePosition)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSignupRepository_CreateWithNextPosition_retries_position_conflict(t *testing.T) {
	ctx := context.Background()
	signupTime := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// First attempt loses the position race.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(nil))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ev-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(queue_position\), 0\) \+ 1 FROM signups`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(4))
	mock.ExpectQuery(`INSERT INTO signups`).
		WithArgs("ev-1", "user-1", 4, pq.Array([]string{"bass"}), "", signupTime).
		WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: positionConstraint})
	mock.ExpectRollback()

	// Retry succeeds with the next position.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(nil))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ev-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(queue_position\), 0\) \+ 1 FROM signups`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(5))
	mock.ExpectQuery(`INSERT INTO signups`).
		WithArgs("ev-1", "user-1", 5, pq.Array([]string{"bass"}), "", signupTime).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("su-2"))
	mock.ExpectCommit()

	repo := NewSignupRepository(db)
	s := domain.NewSignup("ev-1", "user-1", []string{"bass"}, "", signupTime)
	err = repo.CreateWithNextPosition(ctx, s)
	require.NoError(t, err)
	require.Equal(t, "su-2", s.ID)
	require.Equal(t, 5, s.QueuePosition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 1, 19, 5, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Signup
		wantErr bool
	}{
		{
			name: "ordered by queue position, sparse after cancellation",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(signupCols).
					AddRow("su-1", "ev-1", "user-1", 1, "{guitar}", "", t1).
					AddRow("su-3", "ev-1", "user-3", 3, "{drums,vocals}", "late set", t2)
				mock.ExpectQuery(`SELECT id, event_id, user_id, queue_position, instruments, notes, signup_time`).
					WithArgs("ev-1").
					WillReturnRows(rows)
			},
			want: []*domain.Signup{
				{ID: "su-1", EventID: "ev-1", UserID: "user-1", QueuePosition: 1, Instruments: []string{"guitar"}, Notes: "", SignupTime: t1},
				{ID: "su-3", EventID: "ev-1", UserID: "user-3", QueuePosition: 3, Instruments: []string{"drums", "vocals"}, Notes: "late set", SignupTime: t2},
			},
		},
		{
			name: "empty queue",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, user_id, queue_position, instruments, notes, signup_time`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(signupCols))
			},
			want: []*domain.Signup{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, user_id, queue_position, instruments, notes, signup_time`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSignupRepository(db)
			got, err := repo.ListByEventID(ctx, "ev-1")
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSignupRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, user_id, queue_position, instruments, notes, signup_time`).
		WithArgs("ev-1", "user-2").
		WillReturnRows(sqlmock.NewRows(signupCols).
			AddRow("su-2", "ev-1", "user-2", 2, "{keys}", "", t1))

	repo := NewSignupRepository(db)
	got, err := repo.GetByEventAndUser(ctx, "ev-1", "user-2")
	require.NoError(t, err)
	require.Equal(t, "su-2", got.ID)
	require.Equal(t, 2, got.QueuePosition)
	require.Equal(t, []string{"keys"}, got.Instruments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupRepository_GetByEventAndUser_not_found(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, user_id, queue_position, instruments, notes, signup_time`).
		WithArgs("ev-1", "user-9").
		WillReturnError(sql.ErrNoRows)

	repo := NewSignupRepository(db)
	got, err := repo.GetByEventAndUser(ctx, "ev-1", "user-9")
	require.Nil(t, got)
	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM signups WHERE id = \$1`).
					WithArgs("su-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM signups WHERE id = \$1`).
					WithArgs("su-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM signups WHERE id = \$1`).
					WithArgs("su-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSignupRepository(db)
			err = repo.Delete(ctx, "su-1")
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
