package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

func TestEnrollmentRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		enrollment *domain.Enrollment
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		errIs      error
	}{
		{
			name: "success",
			enrollment: &domain.Enrollment{
				ParticipantID:    "user-1",
				EventID:          "event-1",
				ConfirmationCode: "ABC123XYZ0",
				Status:           domain.EnrollmentStatusConfirmed,
				CreatedAt:        now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO enrollments`).
					WithArgs("user-1", "event-1", "ABC123XYZ0", "confirmed", now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("enr-1"))
			},
		},
		{
			name: "duplicate pair returns ErrAlreadyEnrolled",
			enrollment: &domain.Enrollment{
				ParticipantID:    "user-1",
				EventID:          "event-1",
				ConfirmationCode: "ABC123XYZ0",
				Status:           domain.EnrollmentStatusConfirmed,
				CreatedAt:        now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO enrollments`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "enrollments_participant_event_live_idx"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyEnrolled,
		},
		{
			name: "code collision returns ErrDuplicateCode",
			enrollment: &domain.Enrollment{
				ParticipantID:    "user-2",
				EventID:          "event-1",
				ConfirmationCode: "ABC123XYZ0",
				Status:           domain.EnrollmentStatusConfirmed,
				CreatedAt:        now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO enrollments`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "enrollments_confirmation_code_key"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateCode,
		},
		{
			name: "db error",
			enrollment: &domain.Enrollment{
				ParticipantID:    "user-1",
				EventID:          "event-1",
				ConfirmationCode: "ABC123XYZ0",
				Status:           domain.EnrollmentStatusConfirmed,
				CreatedAt:        now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO enrollments`).
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
			repo := NewEnrollmentRepository(db)
			err = repo.Create(ctx, tt.enrollment)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "enr-1", tt.enrollment.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEnrollmentRepository_GetByCode(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "participant_id", "event_id", "confirmation_code", "status", "created_at", "checked_in_at"}).
			AddRow("enr-1", "user-1", "event-1", "ABC123XYZ0", "confirmed", now, nil)
		mock.ExpectQuery(`SELECT id, participant_id, event_id, confirmation_code, status, created_at, checked_in_at`).
			WithArgs("ABC123XYZ0").
			WillReturnRows(rows)

		repo := NewEnrollmentRepository(db)
		got, err := repo.GetByCode(ctx, "ABC123XYZ0")
		require.NoError(t, err)
		require.Equal(t, "enr-1", got.ID)
		require.Equal(t, domain.EnrollmentStatusConfirmed, got.Status)
		require.Nil(t, got.CheckedInAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown code", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, participant_id, event_id, confirmation_code, status, created_at, checked_in_at`).
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		repo := NewEnrollmentRepository(db)
		_, err = repo.GetByCode(ctx, "NOPE")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnrollmentRepository_CancelConfirmed(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE enrollments`).
			WithArgs("event-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEnrollmentRepository(db)
		require.NoError(t, repo.CancelConfirmed(ctx, "event-1", "user-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no confirmed enrollment", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE enrollments`).
			WithArgs("event-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEnrollmentRepository(db)
		err = repo.CancelConfirmed(ctx, "event-1", "user-1")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnrollmentRepository_MarkAttended(t *testing.T) {
	ctx := context.Background()
	checkedInAt := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

	t.Run("marks one row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE enrollments`).
			WithArgs("ABC123XYZ0", checkedInAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEnrollmentRepository(db)
		n, err := repo.MarkAttended(ctx, "ABC123XYZ0", checkedInAt)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second check-in touches zero rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE enrollments`).
			WithArgs("ABC123XYZ0", checkedInAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEnrollmentRepository(db)
		n, err := repo.MarkAttended(ctx, "ABC123XYZ0", checkedInAt)
		require.NoError(t, err)
		require.EqualValues(t, 0, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
