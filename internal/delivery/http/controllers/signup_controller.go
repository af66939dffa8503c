package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"jamqueuepro/internal/delivery/http/helpers"
	"jamqueuepro/internal/delivery/http/middleware"
	"jamqueuepro/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

const (
	maxInstruments = 10
	maxNotesLen    = 500
)

type SignupController struct {
	Logger  *slog.Logger
	Service domain.SignupQueueService
}

func NewSignupController(logger *slog.Logger, svc domain.SignupQueueService) *SignupController {
	return &SignupController{
		Logger:  logger,
		Service: svc,
	}
}

// SignupDetailsRequest is the request body for POST /events/{eventID}/signups
// and PATCH /signups/{signupID}.
type SignupDetailsRequest struct {
	Instruments []string `json:"instruments"`
	Notes       string   `json:"notes"`
}

// Validate implements helpers.Validator.
func (s *SignupDetailsRequest) Validate() []string {
	var errs []string
	if len(s.Instruments) > maxInstruments {
		errs = append(errs, "too many instruments")
	}
	cleaned := make([]string, 0, len(s.Instruments))
	for _, inst := range s.Instruments {
		inst = strings.TrimSpace(inst)
		if inst == "" {
			errs = append(errs, "instruments must not contain empty entries")
			break
		}
		cleaned = append(cleaned, inst)
	}
	if len(errs) == 0 {
		s.Instruments = cleaned
	}
	if len(s.Notes) > maxNotesLen {
		errs = append(errs, "notes must be at most 500 characters")
	}
	return errs
}

// writeQueueError maps sign-up queue sentinels to their HTTP status and error
// code. Unknown errors are logged and reported as 500.
func (c *SignupController) writeQueueError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrDeadlinePassed):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeDeadlinePassed, "signup deadline has passed")
	case errors.Is(err, domain.ErrCapacityExceeded):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeCapacityExceeded, "event is full")
	case errors.Is(err, domain.ErrAlreadySignedUp):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeAlreadySignedUp, "already signed up for this event")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		c.Logger.ErrorContext(r.Context(), "storage unavailable", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStorageUnavailable, "storage unavailable, try again")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// RequestSignup godoc
// @Summary Sign up for an event's queue
// @Description Requests a spot in the event's performance queue. Checks run in order: event exists, deadline not passed, capacity not reached, not already signed up. On success the assigned queue position is returned.
// @Tags signups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body SignupDetailsRequest true "Instruments and notes"
// @Success 201 {object} helpers.APIResponse "data contains the created signup with queue_position"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, deadline_passed, capacity_exceeded, or already_signed_up"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Router /events/{eventID}/signups [post]
func (c *SignupController) RequestSignup(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req SignupDetailsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	signup, err := c.Service.RequestSignup(r.Context(), eventID, userID, req.Instruments, req.Notes)
	if err != nil {
		c.writeQueueError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, signup)
}

// ListSignups godoc
// @Summary List an event's signup queue
// @Description Returns the event's active signups ordered by queue position ascending. Positions may be sparse after cancellations.
// @Tags signups
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of signups ordered by queue_position"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Router /events/{eventID}/signups [get]
func (c *SignupController) ListSignups(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	signups, err := c.Service.ListSignups(r.Context(), eventID)
	if err != nil {
		c.writeQueueError(w, r, err)
		return
	}
	if signups == nil {
		signups = []*domain.Signup{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, signups)
}

// MySignup godoc
// @Summary Get the caller's signup for an event
// @Description Returns the authenticated user's own signup (including queue position) for the event, or 404 if they have none.
// @Tags signups
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the caller's signup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Router /events/{eventID}/signups/me [get]
func (c *SignupController) MySignup(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	signup, err := c.Service.Position(r.Context(), eventID, userID)
	if err != nil {
		c.writeQueueError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, signup)
}

// UpdateSignup godoc
// @Summary Update instruments and notes on a signup
// @Description Edits the caller's own signup. The queue position is immutable.
// @Tags signups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param signupID path string true "Signup ID (UUID)"
// @Param body body SignupDetailsRequest true "Instruments and notes"
// @Success 200 {object} helpers.APIResponse "data contains the updated signup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Router /signups/{signupID} [patch]
func (c *SignupController) UpdateSignup(w http.ResponseWriter, r *http.Request) {
	signupID := r.PathValue("signupID")
	if !uuidRegex.MatchString(signupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid signupID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req SignupDetailsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	signup, err := c.Service.UpdateSignupDetails(r.Context(), signupID, userID, req.Instruments, req.Notes)
	if err != nil {
		c.writeQueueError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, signup)
}

// CancelSignup godoc
// @Summary Cancel a signup
// @Description Removes the caller's own signup from the queue. Remaining queue positions are not renumbered.
// @Tags signups
// @Produce json
// @Security BearerAuth
// @Param signupID path string true "Signup ID (UUID)"
// @Success 204 "signup cancelled"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Router /signups/{signupID} [delete]
func (c *SignupController) CancelSignup(w http.ResponseWriter, r *http.Request) {
	signupID := r.PathValue("signupID")
	if !uuidRegex.MatchString(signupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid signupID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.CancelSignup(r.Context(), signupID, userID); err != nil {
		c.writeQueueError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
