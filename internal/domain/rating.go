package domain

import (
	"context"
	"time"
)

// Rating is a post-event evaluation left by a participant who attended.
// swagger:model Rating
type Rating struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	EventID       string    `json:"event_id"`
	Score         int       `json:"score"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RatingSummary aggregates an event's ratings.
// swagger:model RatingSummary
type RatingSummary struct {
	EventID string  `json:"event_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RatingRepository defines storage operations for ratings.
type RatingRepository interface {
	// Create inserts a rating; ErrAlreadyRated when the pair already rated.
	Create(ctx context.Context, rating *Rating) error
	ListByEvent(ctx context.Context, eventID string) ([]*Rating, error)
	SummaryByEvent(ctx context.Context, eventID string) (*RatingSummary, error)
}

// RatingService defines rating operations. Rating requires attendance.
type RatingService interface {
	Rate(ctx context.Context, participantID, eventID string, score int, comment string) (*Rating, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Rating, *RatingSummary, error)
}
