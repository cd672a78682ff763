package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

// codeRetries bounds regeneration attempts when a freshly generated
// confirmation code collides with an existing one.
const codeRetries = 3

type enrollmentService struct {
	enrollmentRepo domain.EnrollmentRepository
	waitlistRepo   domain.WaitlistRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	ledger         domain.CapacityLedger
	codes          domain.CodeGenerator
	emailService   domain.EmailService
	logger         *slog.Logger
}

// NewEnrollmentService creates the enrollment manager. It owns the
// reserve-enroll flow, cancellation, and waitlist promotion.
func NewEnrollmentService(
	enrollmentRepo domain.EnrollmentRepository,
	waitlistRepo domain.WaitlistRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	ledger domain.CapacityLedger,
	codes domain.CodeGenerator,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		waitlistRepo:   waitlistRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		ledger:         ledger,
		codes:          codes,
		emailService:   emailService,
		logger:         logger,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, participantID, eventID string) (*domain.Enrollment, error) {
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

	// Fast-fail on an existing non-cancelled enrollment. The partial unique
	// index catches the racing case below.
	if _, err := s.enrollmentRepo.GetByEventAndParticipant(ctx, eventID, participantID); err == nil {
		return nil, domain.ErrAlreadyEnrolled
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}

	reserved, err := s.ledger.TryReserve(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("reserve slot: %w", err)
	}
	if !reserved {
		// No slot: no enrollment row is created. The caller decides whether
		// to join the waitlist.
		return nil, domain.ErrCapacityExhausted
	}

	enrollment, err := s.insertWithFreshCode(ctx, participantID, eventID)
	if err != nil {
		// The reservation belongs to no row now; hand the slot back.
		if relErr := s.ledger.Release(ctx, eventID); relErr != nil {
			s.logger.ErrorContext(ctx, "release after failed enrollment insert", "event_id", eventID, "err", relErr)
		}
		return nil, err
	}

	s.sendConfirmation(ctx, enrollment, event)
	return enrollment, nil
}

// insertWithFreshCode inserts a confirmed enrollment, regenerating the
// confirmation code on a store-level collision.
func (s *enrollmentService) insertWithFreshCode(ctx context.Context, participantID, eventID string) (*domain.Enrollment, error) {
	for attempt := 0; attempt < codeRetries; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate confirmation code: %w", err)
		}
		enrollment := &domain.Enrollment{
			ParticipantID:    participantID,
			EventID:          eventID,
			ConfirmationCode: code,
			Status:           domain.EnrollmentStatusConfirmed,
			CreatedAt:        time.Now(),
		}
		err = s.enrollmentRepo.Create(ctx, enrollment)
		if err == nil {
			return enrollment, nil
		}
		if errors.Is(err, domain.ErrDuplicateCode) {
			continue
		}
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			return nil, domain.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return nil, fmt.Errorf("create enrollment: %w", domain.ErrDuplicateCode)
}

func (s *enrollmentService) Cancel(ctx context.Context, participantID, eventID string) error {
	if err := s.enrollmentRepo.CancelConfirmed(ctx, eventID, participantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("cancel enrollment: %w", err)
	}
	if err := s.ledger.Release(ctx, eventID); err != nil {
		// An underflow here means the ledger and the enrollment rows
		// disagree; surface it, never swallow it.
		return fmt.Errorf("release slot: %w", err)
	}
	if err := s.promoteNext(ctx, eventID); err != nil {
		return err
	}
	return nil
}

// promoteNext converts the lowest-position waitlist entry into a confirmed
// enrollment. A slot was just released, so on a still-active event a failed
// reservation can only mean the serialization discipline was broken.
func (s *enrollmentService) promoteNext(ctx context.Context, eventID string) error {
	entry, err := s.waitlistRepo.NextForEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil // empty queue, nothing to promote
		}
		return fmt.Errorf("next waitlist entry: %w", err)
	}

	reserved, err := s.ledger.TryReserve(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The event was cancelled or finished after the queue formed.
			// The cancellation already succeeded; leave the queue alone.
			return nil
		}
		return fmt.Errorf("reserve slot for promotion: %w", err)
	}
	if !reserved {
		return fmt.Errorf("promote waitlist entry %s: %w", entry.ID, domain.ErrInvariantViolation)
	}

	enrollment, err := s.insertWithFreshCode(ctx, entry.ParticipantID, eventID)
	if err != nil {
		if relErr := s.ledger.Release(ctx, eventID); relErr != nil {
			s.logger.ErrorContext(ctx, "release after failed promotion insert", "event_id", eventID, "err", relErr)
		}
		return fmt.Errorf("promote waitlist entry %s: %w", entry.ID, err)
	}

	// Mark intent before removal; delivery itself is external and best-effort.
	if err := s.waitlistRepo.MarkNotified(ctx, entry.ID); err != nil {
		s.logger.WarnContext(ctx, "mark waitlist entry notified", "entry_id", entry.ID, "err", err)
	}
	if err := s.waitlistRepo.Delete(ctx, entry.ID); err != nil {
		return fmt.Errorf("remove promoted waitlist entry: %w", err)
	}

	s.logger.InfoContext(ctx, "waitlist promotion",
		"event_id", eventID,
		"participant_id", entry.ParticipantID,
		"position", entry.Position,
	)
	s.sendPromotion(ctx, enrollment)
	return nil
}

func (s *enrollmentService) ListByParticipant(ctx context.Context, participantID string) ([]*domain.EnrollmentWithEvent, error) {
	enrollments, err := s.enrollmentRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	eventsByID := make(map[string]*domain.Event)
	result := make([]*domain.EnrollmentWithEvent, 0, len(enrollments))
	for _, e := range enrollments {
		event, ok := eventsByID[e.EventID]
		if !ok {
			event, err = s.eventRepo.GetByID(ctx, e.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("get event for enrollment: %w", err)
			}
			eventsByID[e.EventID] = event
		}
		result = append(result, &domain.EnrollmentWithEvent{Enrollment: e, Event: event})
	}
	return result, nil
}

func (s *enrollmentService) sendConfirmation(ctx context.Context, enrollment *domain.Enrollment, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	participant, err := s.userRepo.GetByID(ctx, enrollment.ParticipantID)
	if err != nil {
		s.logger.WarnContext(ctx, "load participant for confirmation email", "participant_id", enrollment.ParticipantID, "err", err)
		return
	}
	data := &domain.EnrollmentConfirmationEmailData{
		Email:            participant.Email,
		Name:             participant.Name,
		EventTitle:       event.Title,
		ConfirmationCode: enrollment.ConfirmationCode,
	}
	if err := s.emailService.SendEnrollmentConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "send enrollment confirmation", "participant_id", participant.ID, "err", err)
	}
}

func (s *enrollmentService) sendPromotion(ctx context.Context, enrollment *domain.Enrollment) {
	if s.emailService == nil {
		return
	}
	participant, err := s.userRepo.GetByID(ctx, enrollment.ParticipantID)
	if err != nil {
		s.logger.WarnContext(ctx, "load participant for promotion email", "participant_id", enrollment.ParticipantID, "err", err)
		return
	}
	event, err := s.eventRepo.GetByID(ctx, enrollment.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "load event for promotion email", "event_id", enrollment.EventID, "err", err)
		return
	}
	data := &domain.WaitlistPromotionEmailData{
		Email:            participant.Email,
		Name:             participant.Name,
		EventTitle:       event.Title,
		ConfirmationCode: enrollment.ConfirmationCode,
	}
	if err := s.emailService.SendWaitlistPromotion(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "send waitlist promotion", "participant_id", participant.ID, "err", err)
	}
}
