package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/helpers"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/middleware"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

// RateEventRequest is the request body for POST /events/{eventID}/ratings.
type RateEventRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Validate implements Validator.
func (r RateEventRequest) Validate() []string {
	var errs []string
	if r.Score < 1 || r.Score > 5 {
		errs = append(errs, "score must be between 1 and 5")
	}
	return errs
}

// ListRatingsResponse is the data payload for GET /events/{eventID}/ratings (200).
type ListRatingsResponse struct {
	Items   []*domain.Rating      `json:"items"`
	Summary *domain.RatingSummary `json:"summary"`
}

type RatingController struct {
	Logger  *slog.Logger
	Service domain.RatingService
}

func NewRatingController(logger *slog.Logger, svc domain.RatingService) *RatingController {
	return &RatingController{
		Logger:  logger,
		Service: svc,
	}
}

// RateEvent godoc
// @Summary Rate an event
// @Description Leaves a score (1-5) and optional comment. Only participants whose enrollment reached the attended state can rate, once per event.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RateEventRequest true "Score and optional comment"
// @Success 201 {object} helpers.APIResponse "data contains the rating"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (did not attend)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already rated)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ratings [post]
func (c *RatingController) RateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req RateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rating, err := c.Service.Rate(r.Context(), userID, eventID, req.Score, req.Comment)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotAttended) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only attendees can rate this event")
			return
		}
		if errors.Is(err, domain.ErrAlreadyRated) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already rated")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rating)
}

// ListRatings godoc
// @Summary List an event's ratings
// @Description Returns the event's ratings with an average/count summary.
// @Tags ratings
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains items and summary"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ratings [get]
func (c *RatingController) ListRatings(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	ratings, summary, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if ratings == nil {
		ratings = []*domain.Rating{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRatingsResponse{Items: ratings, Summary: summary})
}
