package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
	ledger    domain.CapacityLedger
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, userRepo domain.UserRepository, ledger domain.CapacityLedger) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		ledger:    ledger,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	event.Title = strings.TrimSpace(event.Title)
	event.Venue = strings.TrimSpace(event.Venue)
	event.Category = strings.TrimSpace(event.Category)

	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.Venue == "" {
		return fmt.Errorf("%w: venue is required", domain.ErrInvalidInput)
	}
	if event.Category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if event.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidInput)
	}
	if event.StartsAt.IsZero() {
		return fmt.Errorf("%w: starts_at is required", domain.ErrInvalidInput)
	}
	if event.TicketPrice < 0 {
		return fmt.Errorf("%w: ticket_price cannot be negative", domain.ErrInvalidInput)
	}
	if event.TicketPrice == 0 {
		event.Free = true
	}

	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get organizer: %w", err)
	}
	if organizer.Role != domain.RoleOrganizer {
		return domain.ErrForbidden
	}

	now := time.Now()
	event.ConfirmedCount = 0
	event.Status = domain.EventStatusActive
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListActive(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.eventRepo.ListActive(ctx, filter, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) Cancel(ctx context.Context, eventID, organizerID string) error {
	return s.transition(ctx, eventID, organizerID, domain.EventStatusCancelled)
}

func (s *eventService) Finish(ctx context.Context, eventID, organizerID string) error {
	return s.transition(ctx, eventID, organizerID, domain.EventStatusFinished)
}

func (s *eventService) transition(ctx context.Context, eventID, organizerID, status string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	if event.Status != domain.EventStatusActive {
		return fmt.Errorf("%w: event is %s", domain.ErrInvalidInput, event.Status)
	}
	if err := s.eventRepo.UpdateStatus(ctx, eventID, status); err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	return nil
}

func (s *eventService) CapacitySnapshot(ctx context.Context, eventID string) (*domain.CapacitySnapshot, error) {
	snap, err := s.ledger.Snapshot(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("capacity snapshot: %w", err)
	}
	return snap, nil
}
