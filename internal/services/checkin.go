package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

type checkInService struct {
	enrollmentRepo domain.EnrollmentRepository
}

// NewCheckInService creates the check-in processor. It operates only on the
// enrollment identified by a confirmation code and transitions it to
// attended exactly once.
func NewCheckInService(enrollmentRepo domain.EnrollmentRepository) domain.CheckInService {
	return &checkInService{enrollmentRepo: enrollmentRepo}
}

func (s *checkInService) CheckIn(ctx context.Context, confirmationCode string) (*domain.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByCode(ctx, confirmationCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("get enrollment by code: %w", err)
	}

	switch enrollment.Status {
	case domain.EnrollmentStatusAttended:
		return nil, domain.ErrAlreadyCheckedIn
	case domain.EnrollmentStatusCancelled:
		// A cancelled enrollment's code is dead; it is never reusable.
		return nil, domain.ErrNotConfirmed
	}

	now := time.Now()
	n, err := s.enrollmentRepo.MarkAttended(ctx, confirmationCode, now)
	if err != nil {
		return nil, fmt.Errorf("mark attended: %w", err)
	}
	if n == 0 {
		// Lost the race to another check-in with the same code.
		return nil, domain.ErrAlreadyCheckedIn
	}

	enrollment.Status = domain.EnrollmentStatusAttended
	enrollment.CheckedInAt = &now
	return enrollment, nil
}
