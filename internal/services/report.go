package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type reportService struct {
	reportRepo domain.ReportRepository
	ratingRepo domain.RatingRepository
	eventRepo  domain.EventRepository
	userRepo   domain.UserRepository
}

// NewReportService creates a ReportService.
func NewReportService(reportRepo domain.ReportRepository, ratingRepo domain.RatingRepository, eventRepo domain.EventRepository, userRepo domain.UserRepository) domain.ReportService {
	return &reportService{
		reportRepo: reportRepo,
		ratingRepo: ratingRepo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
	}
}

// EventReport assembles the per-event projection. Only the organizer who
// owns the event may request it.
func (s *reportService) EventReport(ctx context.Context, eventID, requesterID string) (*domain.EventReport, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != requesterID {
		return nil, domain.ErrForbidden
	}

	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		return nil, fmt.Errorf("get organizer: %w", err)
	}

	stats, err := s.reportRepo.EnrollmentStats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("enrollment stats: %w", err)
	}

	summary, err := s.ratingRepo.SummaryByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}

	waitlistLen, err := s.reportRepo.WaitlistLength(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("waitlist length: %w", err)
	}

	report := &domain.EventReport{
		Event:          event,
		OrganizerName:  organizer.Name,
		Enrollments:    *stats,
		AttendanceRate: attendanceRate(stats),
		WaitlistLength: waitlistLen,
	}
	if summary.Count > 0 {
		report.Ratings = summary
	}
	return report, nil
}

func (s *reportService) CategoryStats(ctx context.Context) ([]*domain.CategoryStats, error) {
	stats, err := s.reportRepo.CategoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return stats, nil
}

// attendanceRate is attended over everyone who held a seat at some point,
// so cancelled enrollments do not drag the rate down.
func attendanceRate(stats *domain.EnrollmentStats) float64 {
	held := stats.Confirmed + stats.Attended
	if held == 0 {
		return 0
	}
	return float64(stats.Attended) / float64(held)
}
