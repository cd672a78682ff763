package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type capacityLedger struct {
	DB *sql.DB
}

// NewCapacityLedger returns a CapacityLedger backed by the confirmed_count
// column of the events table. Both TryReserve and Release are single
// conditional UPDATEs, so concurrent callers on the same event are
// serialized by the database's row lock and the last open slot can only be
// taken once.
func NewCapacityLedger(db *sql.DB) domain.CapacityLedger {
	return &capacityLedger{DB: db}
}

func (l *capacityLedger) TryReserve(ctx context.Context, eventID string) (bool, error) {
	query := `
		UPDATE events
		SET confirmed_count = confirmed_count + 1, updated_at = NOW()
		WHERE id = $1 AND status = 'active' AND confirmed_count < capacity
	`
	res, err := l.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		return false, fmt.Errorf("reserve slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}

	// No row changed: either the event is full, or it is missing/inactive.
	var status string
	err = l.DB.QueryRowContext(ctx, `SELECT status FROM events WHERE id = $1`, eventID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	if status != domain.EventStatusActive {
		return false, domain.ErrNotFound
	}
	return false, nil
}

func (l *capacityLedger) Release(ctx context.Context, eventID string) error {
	query := `
		UPDATE events
		SET confirmed_count = confirmed_count - 1, updated_at = NOW()
		WHERE id = $1 AND confirmed_count > 0
	`
	res, err := l.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists bool
	err = l.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	// Releasing at zero means a caller released a slot it never reserved.
	return domain.ErrInvariantViolation
}

func (l *capacityLedger) Snapshot(ctx context.Context, eventID string) (*domain.CapacitySnapshot, error) {
	query := `
		SELECT capacity, confirmed_count
		FROM events
		WHERE id = $1
	`
	snap := &domain.CapacitySnapshot{EventID: eventID}
	err := l.DB.QueryRowContext(ctx, query, eventID).Scan(&snap.Capacity, &snap.ConfirmedCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	snap.Remaining = snap.Capacity - snap.ConfirmedCount
	return snap, nil
}
