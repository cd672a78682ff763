package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/helpers"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/middleware"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

func testControllerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockEnrollmentService struct {
	enrollment  *domain.Enrollment
	enrollments []*domain.EnrollmentWithEvent
	enrollErr   error
	cancelErr   error
	listErr     error
}

func (m *mockEnrollmentService) Enroll(ctx context.Context, participantID, eventID string) (*domain.Enrollment, error) {
	if m.enrollErr != nil {
		return nil, m.enrollErr
	}
	return m.enrollment, nil
}

func (m *mockEnrollmentService) Cancel(ctx context.Context, participantID, eventID string) error {
	return m.cancelErr
}

func (m *mockEnrollmentService) ListByParticipant(ctx context.Context, participantID string) ([]*domain.EnrollmentWithEvent, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.enrollments, nil
}

func enrollRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/events/e1/enrollments", nil)
	req.SetPathValue("eventID", "e1")
	if userID != "" {
		req = req.WithContext(middleware.SetUser(req.Context(), userID, domain.RoleParticipant))
	}
	return req
}

func TestEnrollmentController_Enroll(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mockEnrollmentService
		userID     string
		wantStatus int
		wantCode   string
	}{
		{
			name: "created",
			svc: &mockEnrollmentService{enrollment: &domain.Enrollment{
				ID: "enr-1", ParticipantID: "u1", EventID: "e1",
				ConfirmationCode: "ABC123XYZ0", Status: domain.EnrollmentStatusConfirmed,
			}},
			userID:     "u1",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unauthorized without user in context",
			svc:        &mockEnrollmentService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "unknown event",
			svc:        &mockEnrollmentService{enrollErr: domain.ErrNotFound},
			userID:     "u1",
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "full event",
			svc:        &mockEnrollmentService{enrollErr: domain.ErrCapacityExhausted},
			userID:     "u1",
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeCapacityExhausted,
		},
		{
			name:       "already enrolled",
			svc:        &mockEnrollmentService{enrollErr: domain.ErrAlreadyEnrolled},
			userID:     "u1",
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEnrollmentController(testControllerLogger(), tt.svc)
			w := httptest.NewRecorder()

			ctrl.Enroll(w, enrollRequest(tt.userID))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if tt.wantCode == "" {
				if resp.Error != nil {
					t.Fatalf("expected no error, got %v", resp.Error)
				}
				return
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("expected error code %q, got %v", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestEnrollmentController_CancelEnrollment(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mockEnrollmentService
		wantStatus int
	}{
		{"cancelled", &mockEnrollmentService{}, http.StatusOK},
		{"no confirmed enrollment", &mockEnrollmentService{cancelErr: domain.ErrNotFound}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEnrollmentController(testControllerLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodDelete, "/events/e1/enrollments", nil)
			req.SetPathValue("eventID", "e1")
			req = req.WithContext(middleware.SetUser(req.Context(), "u1", domain.RoleParticipant))
			w := httptest.NewRecorder()

			ctrl.CancelEnrollment(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestEnrollmentController_ListMyEnrollments_EmptyIsArray(t *testing.T) {
	ctrl := NewEnrollmentController(testControllerLogger(), &mockEnrollmentService{})
	req := httptest.NewRequest(http.MethodGet, "/me/enrollments", nil)
	req = req.WithContext(middleware.SetUser(req.Context(), "u1", domain.RoleParticipant))
	w := httptest.NewRecorder()

	ctrl.ListMyEnrollments(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected data to be an array: %v", err)
	}
	if resp.Data == nil {
		t.Fatal("expected an empty array, got null")
	}
}
