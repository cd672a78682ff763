package domain

import "context"

// EnrollmentStats counts an event's enrollments by state.
// swagger:model EnrollmentStats
type EnrollmentStats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
	Attended  int `json:"attended"`
}

// EventReport is a read-only projection of an event's outcome. It never
// participates in the write path.
// swagger:model EventReport
type EventReport struct {
	Event          *Event          `json:"event"`
	OrganizerName  string          `json:"organizer_name"`
	Enrollments    EnrollmentStats `json:"enrollments"`
	AttendanceRate float64         `json:"attendance_rate"`
	Ratings        *RatingSummary  `json:"ratings,omitempty"`
	WaitlistLength int             `json:"waitlist_length"`
}

// CategoryStats aggregates active events per category.
// swagger:model CategoryStats
type CategoryStats struct {
	Category string `json:"category"`
	Events   int    `json:"events"`
	Enrolled int    `json:"enrolled"`
}

// ReportRepository defines the aggregate queries behind reports.
type ReportRepository interface {
	EnrollmentStats(ctx context.Context, eventID string) (*EnrollmentStats, error)
	WaitlistLength(ctx context.Context, eventID string) (int, error)
	CategoryStats(ctx context.Context) ([]*CategoryStats, error)
}

// ReportService builds read-only projections over the core's data.
type ReportService interface {
	EventReport(ctx context.Context, eventID, requesterID string) (*EventReport, error)
	CategoryStats(ctx context.Context) ([]*CategoryStats, error)
}
