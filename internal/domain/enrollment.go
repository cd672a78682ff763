package domain

import (
	"context"
	"time"
)

// Enrollment statuses.
const (
	EnrollmentStatusConfirmed = "confirmed"
	EnrollmentStatusCancelled = "cancelled"
	EnrollmentStatusAttended  = "attended"
)

// Enrollment represents a participant's confirmed place in an event.
// The confirmation code is globally unique and is the key used at check-in.
// swagger:model Enrollment
type Enrollment struct {
	ID               string     `json:"id"`
	ParticipantID    string     `json:"participant_id"`
	EventID          string     `json:"event_id"`
	ConfirmationCode string     `json:"confirmation_code"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	CheckedInAt      *time.Time `json:"checked_in_at,omitempty"`
}

// EnrollmentWithEvent bundles an enrollment with its related event.
type EnrollmentWithEvent struct {
	Enrollment *Enrollment `json:"enrollment"`
	Event      *Event      `json:"event"`
}

// CodeGenerator produces confirmation codes. Generated codes are
// collision-resistant but uniqueness is only guaranteed by the store;
// a duplicate insert is retryable with a fresh code.
type CodeGenerator interface {
	Generate() (string, error)
}

// EnrollmentRepository defines storage operations for enrollments.
type EnrollmentRepository interface {
	// Create inserts a confirmed enrollment. It returns ErrAlreadyEnrolled
	// when a non-cancelled enrollment exists for the (participant, event)
	// pair and ErrDuplicateCode when the confirmation code is taken.
	Create(ctx context.Context, e *Enrollment) error
	GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*Enrollment, error)
	GetByCode(ctx context.Context, code string) (*Enrollment, error)
	ListByParticipant(ctx context.Context, participantID string) ([]*Enrollment, error)
	// CancelConfirmed transitions a confirmed enrollment to cancelled.
	// It returns ErrNotFound when no confirmed enrollment exists for the
	// pair, so repeated cancellation is an error rather than a no-op.
	CancelConfirmed(ctx context.Context, eventID, participantID string) error
	// MarkAttended transitions the enrollment with the given code from
	// confirmed to attended and records checkedInAt. It returns the number
	// of rows updated; zero means the enrollment was not in state confirmed.
	MarkAttended(ctx context.Context, code string, checkedInAt time.Time) (int64, error)
}

// EnrollmentService is the enrollment manager: it owns the
// reserve-enroll-cancel-promote flow over the capacity ledger.
type EnrollmentService interface {
	// Enroll confirms a place for the participant. It returns
	// ErrCapacityExhausted when the event is full; the caller decides
	// whether to join the waitlist (explicit two-step opt-in).
	Enroll(ctx context.Context, participantID, eventID string) (*Enrollment, error)
	// Cancel cancels the participant's confirmed enrollment, frees the
	// slot, and promotes the head of the waitlist when one exists.
	Cancel(ctx context.Context, participantID, eventID string) error
	ListByParticipant(ctx context.Context, participantID string) ([]*EnrollmentWithEvent, error)
}

// CheckInService resolves a confirmation code and marks attendance,
// exactly once.
type CheckInService interface {
	CheckIn(ctx context.Context, confirmationCode string) (*Enrollment, error)
}
