package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type ratingRepository struct {
	DB *sql.DB
}

func NewRatingRepository(db *sql.DB) domain.RatingRepository {
	return &ratingRepository{DB: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (participant_id, event_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		rating.ParticipantID, rating.EventID, rating.Score, rating.Comment, rating.CreatedAt,
	).Scan(&rating.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrAlreadyRated
		}
		return err
	}
	return nil
}

func (r *ratingRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Rating, error) {
	query := `
		SELECT id, participant_id, event_id, score, comment, created_at
		FROM ratings
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*domain.Rating
	for rows.Next() {
		rating := &domain.Rating{}
		if err := rows.Scan(&rating.ID, &rating.ParticipantID, &rating.EventID, &rating.Score, &rating.Comment, &rating.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []*domain.Rating{}
	}
	return ratings, nil
}

func (r *ratingRepository) SummaryByEvent(ctx context.Context, eventID string) (*domain.RatingSummary, error) {
	query := `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM ratings
		WHERE event_id = $1
	`
	summary := &domain.RatingSummary{EventID: eventID}
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
