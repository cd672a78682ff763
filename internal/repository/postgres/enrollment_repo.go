package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type enrollmentRepository struct {
	DB *sql.DB
}

// NewEnrollmentRepository returns a domain.EnrollmentRepository backed by
// Postgres. Uniqueness is enforced by two indexes: a global unique index on
// confirmation_code and a partial unique index on (participant_id, event_id)
// over non-cancelled rows, so cancellation frees the pair for re-enrollment.
func NewEnrollmentRepository(db *sql.DB) domain.EnrollmentRepository {
	return &enrollmentRepository{DB: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	query := `
		INSERT INTO enrollments (participant_id, event_id, confirmation_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, e.ParticipantID, e.EventID, e.ConfirmationCode, e.Status, e.CreatedAt).
		Scan(&e.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			if strings.Contains(perr.Constraint, "confirmation_code") {
				return domain.ErrDuplicateCode
			}
			return domain.ErrAlreadyEnrolled
		}
		return err
	}
	return nil
}

func (r *enrollmentRepository) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*domain.Enrollment, error) {
	query := `
		SELECT id, participant_id, event_id, confirmation_code, status, created_at, checked_in_at
		FROM enrollments
		WHERE event_id = $1 AND participant_id = $2 AND status <> 'cancelled'
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, participantID))
}

func (r *enrollmentRepository) GetByCode(ctx context.Context, code string) (*domain.Enrollment, error) {
	query := `
		SELECT id, participant_id, event_id, confirmation_code, status, created_at, checked_in_at
		FROM enrollments
		WHERE confirmation_code = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, code))
}

func (r *enrollmentRepository) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Enrollment, error) {
	query := `
		SELECT id, participant_id, event_id, confirmation_code, status, created_at, checked_in_at
		FROM enrollments
		WHERE participant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*domain.Enrollment
	for rows.Next() {
		e := &domain.Enrollment{}
		if err := rows.Scan(&e.ID, &e.ParticipantID, &e.EventID, &e.ConfirmationCode, &e.Status, &e.CreatedAt, &e.CheckedInAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if enrollments == nil {
		enrollments = []*domain.Enrollment{}
	}
	return enrollments, nil
}

func (r *enrollmentRepository) CancelConfirmed(ctx context.Context, eventID, participantID string) error {
	query := `
		UPDATE enrollments
		SET status = 'cancelled'
		WHERE event_id = $1 AND participant_id = $2 AND status = 'confirmed'
	`
	res, err := r.DB.ExecContext(ctx, query, eventID, participantID)
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

func (r *enrollmentRepository) MarkAttended(ctx context.Context, code string, checkedInAt time.Time) (int64, error) {
	query := `
		UPDATE enrollments
		SET status = 'attended', checked_in_at = $2
		WHERE confirmation_code = $1 AND status = 'confirmed'
	`
	res, err := r.DB.ExecContext(ctx, query, code, checkedInAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *enrollmentRepository) scanOne(row *sql.Row) (*domain.Enrollment, error) {
	e := &domain.Enrollment{}
	err := row.Scan(&e.ID, &e.ParticipantID, &e.EventID, &e.ConfirmationCode, &e.Status, &e.CreatedAt, &e.CheckedInAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
