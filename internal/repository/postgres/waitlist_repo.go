package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type waitlistRepository struct {
	DB *sql.DB
}

// NewWaitlistRepository returns a domain.WaitlistRepository backed by
// Postgres. Positions are assigned inside the INSERT itself, and a unique
// index on (event_id, position) backstops the assignment under races.
func NewWaitlistRepository(db *sql.DB) domain.WaitlistRepository {
	return &waitlistRepository{DB: db}
}

func (r *waitlistRepository) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	// Position is MAX(position)+1 for the event, computed in the same
	// statement so arrival order is preserved.
	query := `
		INSERT INTO waitlist_entries (participant_id, event_id, position, notified, created_at)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1, FALSE, $3
		FROM waitlist_entries
		WHERE event_id = $2
		RETURNING id, position
	`
	err := r.DB.QueryRowContext(ctx, query, entry.ParticipantID, entry.EventID, entry.CreatedAt).
		Scan(&entry.ID, &entry.Position)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrAlreadyWaitlisted
		}
		return err
	}
	entry.Notified = false
	return nil
}

func (r *waitlistRepository) NextForEvent(ctx context.Context, eventID string) (*domain.WaitlistEntry, error) {
	query := `
		SELECT id, participant_id, event_id, position, notified, created_at
		FROM waitlist_entries
		WHERE event_id = $1
		ORDER BY position ASC
		LIMIT 1
	`
	entry := &domain.WaitlistEntry{}
	err := r.DB.QueryRowContext(ctx, query, eventID).
		Scan(&entry.ID, &entry.ParticipantID, &entry.EventID, &entry.Position, &entry.Notified, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *waitlistRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.WaitlistEntry, error) {
	query := `
		SELECT id, participant_id, event_id, position, notified, created_at
		FROM waitlist_entries
		WHERE event_id = $1
		ORDER BY position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.WaitlistEntry
	for rows.Next() {
		entry := &domain.WaitlistEntry{}
		if err := rows.Scan(&entry.ID, &entry.ParticipantID, &entry.EventID, &entry.Position, &entry.Notified, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.WaitlistEntry{}
	}
	return entries, nil
}

func (r *waitlistRepository) MarkNotified(ctx context.Context, entryID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE waitlist_entries SET notified = TRUE WHERE id = $1`, entryID)
	return err
}

func (r *waitlistRepository) Delete(ctx context.Context, entryID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM waitlist_entries WHERE id = $1`, entryID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
