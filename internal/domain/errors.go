package domain

import "errors"

// Sentinel errors shared across the domain. Services return these directly
// (possibly wrapped with %w) so delivery can map them to HTTP statuses.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed or out-of-range input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden is returned when the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrCapacityExhausted is returned when an event has no open slots.
	// It is a routable condition, not a failure: callers are expected to
	// offer the waitlist as the next step.
	ErrCapacityExhausted = errors.New("event capacity exhausted")

	// ErrInvariantViolation signals an internal bug such as a capacity
	// counter underflow or a failed promotion reservation. It must never be
	// swallowed or retried; delivery reports it as an internal error.
	ErrInvariantViolation = errors.New("capacity invariant violation")
)

// Conflict errors: uniqueness violations surfaced as expected outcomes.
var (
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateTaxID    = errors.New("tax id already in use")
	ErrAlreadyEnrolled   = errors.New("participant already enrolled in event")
	ErrAlreadyWaitlisted = errors.New("participant already on the waitlist for event")
	ErrAlreadyRated      = errors.New("participant already rated event")
	ErrDuplicateCode     = errors.New("confirmation code already in use")
	ErrAlreadyCheckedIn  = errors.New("enrollment already checked in")
	ErrNotConfirmed      = errors.New("enrollment is not confirmed")
	ErrNotAttended       = errors.New("participant did not attend event")
)

// ErrInvalidCode is returned by check-in when no enrollment matches the code.
var ErrInvalidCode = errors.New("invalid confirmation code")
