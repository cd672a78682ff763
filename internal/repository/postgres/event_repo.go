package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (organizer_id, title, description, starts_at, ends_at, venue, category,
		                    capacity, confirmed_count, ticket_price, free, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10, $11, $12, $13)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.OrganizerID, event.Title, event.Description, event.StartsAt, event.EndsAt,
		event.Venue, event.Category, event.Capacity, event.TicketPrice, event.Free,
		event.Status, event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID)
}

const eventColumns = `id, organizer_id, title, description, starts_at, ends_at, venue, category,
		capacity, confirmed_count, ticket_price, free, status, created_at, updated_at`

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	event := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.OrganizerID, &event.Title, &event.Description, &event.StartsAt,
		&event.EndsAt, &event.Venue, &event.Category, &event.Capacity, &event.ConfirmedCount,
		&event.TicketPrice, &event.Free, &event.Status, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) ListActive(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	where := `WHERE status = 'active'`
	args := []any{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(` AND starts_at >= $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM events ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+eventColumns+`
		FROM events
		%s
		ORDER BY starts_at ASC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		if err := rows.Scan(
			&event.ID, &event.OrganizerID, &event.Title, &event.Description, &event.StartsAt,
			&event.EndsAt, &event.Venue, &event.Category, &event.Capacity, &event.ConfirmedCount,
			&event.TicketPrice, &event.Free, &event.Status, &event.CreatedAt, &event.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (r *eventRepository) UpdateStatus(ctx context.Context, eventID, status string) error {
	query := `
		UPDATE events
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, eventID, status)
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
