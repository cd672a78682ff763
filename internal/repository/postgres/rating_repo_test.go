package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

func TestRatingRepository_Create(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "stores the rating",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO ratings`).
					WithArgs("user-1", "event-1", 4, "great show", now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rating-1"))
			},
		},
		{
			name: "one rating per participant per event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO ratings`).
					WithArgs("user-1", "event-1", 4, "great show", now).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "ratings_participant_id_event_id_key"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyRated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewRatingRepository(db)
			rating := &domain.Rating{
				ParticipantID: "user-1",
				EventID:       "event-1",
				Score:         4,
				Comment:       "great show",
				CreatedAt:     now,
			}
			err = repo.Create(context.Background(), rating)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "rating-1", rating.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRatingRepository_SummaryByEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COALESCE\(AVG\(score\), 0\), COUNT\(\*\)`).
		WithArgs("event-1").
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.5, 2))

	repo := NewRatingRepository(db)
	summary, err := repo.SummaryByEvent(context.Background(), "event-1")
	require.NoError(t, err)
	require.Equal(t, 4.5, summary.Average)
	require.Equal(t, 2, summary.Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByEvent_EmptyIsNotNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, participant_id, event_id, score, comment, created_at`).
		WithArgs("event-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant_id", "event_id", "score", "comment", "created_at"}))

	repo := NewRatingRepository(db)
	ratings, err := repo.ListByEvent(context.Background(), "event-1")
	require.NoError(t, err)
	require.NotNil(t, ratings)
	require.Empty(t, ratings)
	require.NoError(t, mock.ExpectationsWereMet())
}
