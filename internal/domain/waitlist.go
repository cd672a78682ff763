package domain

import (
	"context"
	"time"
)

// WaitlistEntry is a participant waiting for a slot in a full event.
// Position is unique per event and strictly increasing in arrival order;
// gaps are acceptable after promotions, only relative order matters.
// swagger:model WaitlistEntry
type WaitlistEntry struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	EventID       string    `json:"event_id"`
	Position      int       `json:"position"`
	Notified      bool      `json:"notified"`
	CreatedAt     time.Time `json:"created_at"`
}

// WaitlistRepository defines storage operations for waitlist entries.
type WaitlistRepository interface {
	// Create inserts an entry with position = MAX(position)+1 for the
	// event (1 when the queue is empty). It returns ErrAlreadyWaitlisted
	// when an entry exists for the (participant, event) pair.
	Create(ctx context.Context, entry *WaitlistEntry) error
	// NextForEvent returns the entry with the lowest position for the
	// event, or ErrNotFound when the queue is empty.
	NextForEvent(ctx context.Context, eventID string) (*WaitlistEntry, error)
	ListByEvent(ctx context.Context, eventID string) ([]*WaitlistEntry, error)
	MarkNotified(ctx context.Context, entryID string) error
	// Delete removes the entry. Promotion removes, it does not soft-delete.
	Delete(ctx context.Context, entryID string) error
}

// WaitlistService defines the participant-facing waitlist operations.
// Promotion is not exposed here: it is fired internally by enrollment
// cancellation.
type WaitlistService interface {
	Join(ctx context.Context, participantID, eventID string) (*WaitlistEntry, error)
	ListByEvent(ctx context.Context, eventID, requesterID string) ([]*WaitlistEntry, error)
}
