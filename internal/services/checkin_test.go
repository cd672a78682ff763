package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

func TestCheckInService_CheckIn(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		seed    func(repo *mockEnrollmentRepository)
		wantErr error
	}{
		{
			name: "marks a confirmed enrollment attended",
			code: "LIVE000001",
			seed: func(repo *mockEnrollmentRepository) {
				repo.Create(context.Background(), &domain.Enrollment{
					ParticipantID:    "user-1",
					EventID:          "event-1",
					ConfirmationCode: "LIVE000001",
					Status:           domain.EnrollmentStatusConfirmed,
				})
			},
		},
		{
			name:    "unknown code",
			code:    "NOPE000001",
			wantErr: domain.ErrInvalidCode,
		},
		{
			name: "already attended",
			code: "DONE000001",
			seed: func(repo *mockEnrollmentRepository) {
				checkedIn := time.Now().Add(-time.Hour)
				repo.byCode["DONE000001"] = &domain.Enrollment{
					ID:               "enr-1",
					ParticipantID:    "user-1",
					EventID:          "event-1",
					ConfirmationCode: "DONE000001",
					Status:           domain.EnrollmentStatusAttended,
					CheckedInAt:      &checkedIn,
				}
			},
			wantErr: domain.ErrAlreadyCheckedIn,
		},
		{
			name: "cancelled enrollment's code is dead",
			code: "DEAD000001",
			seed: func(repo *mockEnrollmentRepository) {
				repo.byCode["DEAD000001"] = &domain.Enrollment{
					ID:               "enr-1",
					ParticipantID:    "user-1",
					EventID:          "event-1",
					ConfirmationCode: "DEAD000001",
					Status:           domain.EnrollmentStatusCancelled,
				}
			},
			wantErr: domain.ErrNotConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockEnrollmentRepository()
			if tt.seed != nil {
				tt.seed(repo)
			}
			service := NewCheckInService(repo)

			enrollment, err := service.CheckIn(context.Background(), tt.code)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if enrollment.Status != domain.EnrollmentStatusAttended {
				t.Fatalf("expected status %q, got %q", domain.EnrollmentStatusAttended, enrollment.Status)
			}
			if enrollment.CheckedInAt == nil {
				t.Fatal("expected CheckedInAt to be set")
			}
		})
	}
}

func TestCheckInService_CheckInTwiceFails(t *testing.T) {
	repo := newMockEnrollmentRepository()
	repo.Create(context.Background(), &domain.Enrollment{
		ParticipantID:    "user-1",
		EventID:          "event-1",
		ConfirmationCode: "ONCE000001",
		Status:           domain.EnrollmentStatusConfirmed,
	})
	service := NewCheckInService(repo)

	if _, err := service.CheckIn(context.Background(), "ONCE000001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.CheckIn(context.Background(), "ONCE000001"); !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}
