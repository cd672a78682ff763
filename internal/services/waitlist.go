package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type waitlistService struct {
	waitlistRepo   domain.WaitlistRepository
	enrollmentRepo domain.EnrollmentRepository
	eventRepo      domain.EventRepository
}

// NewWaitlistService creates a WaitlistService. Joining is an explicit step
// after enrollment reports the event full; it is never done automatically.
func NewWaitlistService(
	waitlistRepo domain.WaitlistRepository,
	enrollmentRepo domain.EnrollmentRepository,
	eventRepo domain.EventRepository,
) domain.WaitlistService {
	return &waitlistService{
		waitlistRepo:   waitlistRepo,
		enrollmentRepo: enrollmentRepo,
		eventRepo:      eventRepo,
	}
}

func (s *waitlistService) Join(ctx context.Context, participantID, eventID string) (*domain.WaitlistEntry, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Status != domain.EventStatusActive {
		return nil, domain.ErrNotFound
	}

	// A participant holding a confirmed place has nothing to wait for.
	if _, err := s.enrollmentRepo.GetByEventAndParticipant(ctx, eventID, participantID); err == nil {
		return nil, domain.ErrAlreadyEnrolled
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}

	entry := &domain.WaitlistEntry{
		ParticipantID: participantID,
		EventID:       eventID,
		CreatedAt:     time.Now(),
	}
	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrAlreadyWaitlisted) {
			return nil, domain.ErrAlreadyWaitlisted
		}
		return nil, fmt.Errorf("create waitlist entry: %w", err)
	}
	return entry, nil
}

func (s *waitlistService) ListByEvent(ctx context.Context, eventID, requesterID string) ([]*domain.WaitlistEntry, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != requesterID {
		return nil, domain.ErrForbidden
	}
	entries, err := s.waitlistRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list waitlist: %w", err)
	}
	return entries, nil
}
