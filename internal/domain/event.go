package domain

import (
	"context"
	"time"
)

// Event statuses.
const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
	EventStatusFinished  = "finished"
)

// Event represents a cultural event published by an organizer.
// ConfirmedCount is the capacity ledger counter: it equals the number of
// enrollments in state confirmed or attended and never exceeds Capacity.
// swagger:model Event
type Event struct {
	ID             string     `json:"id"`
	OrganizerID    string     `json:"organizer_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	StartsAt       time.Time  `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	Venue          string     `json:"venue"`
	Category       string     `json:"category"`
	Capacity       int        `json:"capacity"`
	ConfirmedCount int        `json:"confirmed_count"`
	TicketPrice    float64    `json:"ticket_price"`
	Free           bool       `json:"free"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Remaining returns the number of open slots.
func (e *Event) Remaining() int {
	return e.Capacity - e.ConfirmedCount
}

// CapacitySnapshot is a read-only view of an event's capacity ledger.
// swagger:model CapacitySnapshot
type CapacitySnapshot struct {
	EventID        string `json:"event_id"`
	Capacity       int    `json:"capacity"`
	ConfirmedCount int    `json:"confirmed_count"`
	Remaining      int    `json:"remaining"`
}

// EventFilter narrows event searches. Zero values mean "no filter".
type EventFilter struct {
	Category string
	From     *time.Time
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListActive(ctx context.Context, filter EventFilter, p PaginationParams) ([]*Event, int, error)
	UpdateStatus(ctx context.Context, eventID, status string) error
}

// CapacityLedger is the single source of truth for "is there room" on an
// event. Implementations must serialize TryReserve/Release per event so two
// concurrent reservations for the last slot cannot both succeed.
type CapacityLedger interface {
	// TryReserve atomically increments the confirmed count when a slot is
	// open and returns true. It returns false without mutation when the
	// event is full, and ErrNotFound when the event does not exist or is
	// not active.
	TryReserve(ctx context.Context, eventID string) (bool, error)
	// Release frees one slot. A release on an event whose confirmed count
	// is already zero indicates a caller bug and returns
	// ErrInvariantViolation.
	Release(ctx context.Context, eventID string) error
	Snapshot(ctx context.Context, eventID string) (*CapacitySnapshot, error)
}

// EventService defines organizer-facing event operations.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, eventID string) (*Event, error)
	ListActive(ctx context.Context, filter EventFilter, p PaginationParams) ([]*Event, int, error)
	Cancel(ctx context.Context, eventID, organizerID string) error
	Finish(ctx context.Context, eventID, organizerID string) error
	CapacitySnapshot(ctx context.Context, eventID string) (*CapacitySnapshot, error)
}
