package postgres

import (
	"context"
	"database/sql"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

// NewReportRepository returns a domain.ReportRepository over the aggregate
// queries behind the read-only report projections.
func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{DB: db}
}

func (r *reportRepository) EnrollmentStats(ctx context.Context, eventID string) (*domain.EnrollmentStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'confirmed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE status = 'attended')
		FROM enrollments
		WHERE event_id = $1
	`
	stats := &domain.EnrollmentStats{}
	err := r.DB.QueryRowContext(ctx, query, eventID).
		Scan(&stats.Total, &stats.Confirmed, &stats.Cancelled, &stats.Attended)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *reportRepository) WaitlistLength(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM waitlist_entries WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *reportRepository) CategoryStats(ctx context.Context) ([]*domain.CategoryStats, error) {
	query := `
		SELECT category, COUNT(*), COALESCE(SUM(confirmed_count), 0)
		FROM events
		WHERE status = 'active'
		GROUP BY category
		ORDER BY COUNT(*) DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*domain.CategoryStats
	for rows.Next() {
		s := &domain.CategoryStats{}
		if err := rows.Scan(&s.Category, &s.Events, &s.Enrolled); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []*domain.CategoryStats{}
	}
	return stats, nil
}
