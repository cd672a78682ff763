package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type ratingService struct {
	ratingRepo     domain.RatingRepository
	enrollmentRepo domain.EnrollmentRepository
	eventRepo      domain.EventRepository
}

// NewRatingService creates a RatingService. Rating is open only to
// participants whose enrollment reached the attended state.
func NewRatingService(ratingRepo domain.RatingRepository, enrollmentRepo domain.EnrollmentRepository, eventRepo domain.EventRepository) domain.RatingService {
	return &ratingService{
		ratingRepo:     ratingRepo,
		enrollmentRepo: enrollmentRepo,
		eventRepo:      eventRepo,
	}
}

func (s *ratingService) Rate(ctx context.Context, participantID, eventID string, score int, comment string) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: score must be between 1 and 5", domain.ErrInvalidInput)
	}

	enrollment, err := s.enrollmentRepo.GetByEventAndParticipant(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotAttended
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment.Status != domain.EnrollmentStatusAttended {
		return nil, domain.ErrNotAttended
	}

	rating := &domain.Rating{
		ParticipantID: participantID,
		EventID:       eventID,
		Score:         score,
		Comment:       comment,
		CreatedAt:     time.Now(),
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		if errors.Is(err, domain.ErrAlreadyRated) {
			return nil, domain.ErrAlreadyRated
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return rating, nil
}

func (s *ratingService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Rating, *domain.RatingSummary, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	ratings, err := s.ratingRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list ratings: %w", err)
	}
	summary, err := s.ratingRepo.SummaryByEvent(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("rating summary: %w", err)
	}
	return ratings, summary, nil
}
