package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/helpers"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

// CheckInRequest is the request body for POST /checkin.
type CheckInRequest struct {
	ConfirmationCode string `json:"confirmation_code"`
}

// Validate implements Validator.
func (c CheckInRequest) Validate() []string {
	if strings.TrimSpace(c.ConfirmationCode) == "" {
		return []string{"confirmation_code is required"}
	}
	return nil
}

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{
		Logger:  logger,
		Service: svc,
	}
}

// CheckIn godoc
// @Summary Check a participant in by confirmation code
// @Description Resolves the confirmation code and marks the enrollment attended, exactly once. A second check-in with the same code returns 409.
// @Tags checkin
// @Accept json
// @Produce json
// @Param body body CheckInRequest true "Confirmation code"
// @Success 200 {object} helpers.APIResponse "data contains the attended enrollment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown code)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already checked in or enrollment cancelled)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin [post]
func (c *CheckInController) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	enrollment, err := c.Service.CheckIn(r.Context(), strings.TrimSpace(req.ConfirmationCode))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCode) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown confirmation code")
			return
		}
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already checked in")
			return
		}
		if errors.Is(err, domain.ErrNotConfirmed) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "enrollment is not confirmed")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, enrollment)
}
