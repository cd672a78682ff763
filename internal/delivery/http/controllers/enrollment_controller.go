package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/helpers"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/middleware"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

// CancelEnrollmentResponse is the data payload for DELETE /events/{eventID}/enrollments (200).
type CancelEnrollmentResponse struct {
	Status string `json:"status"`
}

type EnrollmentController struct {
	Logger  *slog.Logger
	Service domain.EnrollmentService
}

func NewEnrollmentController(logger *slog.Logger, svc domain.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		Logger:  logger,
		Service: svc,
	}
}

// Enroll godoc
// @Summary Enroll in an event
// @Description Confirms a place for the authenticated participant and returns the enrollment with its confirmation code. When the event is full the response is 409 capacity_exhausted and the caller may join the waitlist instead.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the enrollment"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already enrolled) or capacity_exhausted (event full)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/enrollments [post]
func (c *EnrollmentController) Enroll(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	enrollment, err := c.Service.Enroll(r.Context(), userID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrCapacityExhausted) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityExhausted, "event is full, join the waitlist")
			return
		}
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already enrolled")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, enrollment)
}

// CancelEnrollment godoc
// @Summary Cancel an enrollment
// @Description Cancels the authenticated participant's confirmed enrollment, frees the slot, and promotes the head of the waitlist when one exists. Cancelling twice returns 404.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no confirmed enrollment)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/enrollments [delete]
func (c *EnrollmentController) CancelEnrollment(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Cancel(r.Context(), userID, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no confirmed enrollment for this event")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CancelEnrollmentResponse{Status: "cancelled"})
}

// ListMyEnrollments godoc
// @Summary List the current user's enrollments
// @Description Returns the authenticated participant's enrollments with their events.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of enrollments with events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/enrollments [get]
func (c *EnrollmentController) ListMyEnrollments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	enrollments, err := c.Service.ListByParticipant(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if enrollments == nil {
		enrollments = []*domain.EnrollmentWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, enrollments)
}
