package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"jamqueuepro/internal/delivery/http/helpers"
	"jamqueuepro/internal/delivery/http/middleware"
	"jamqueuepro/internal/domain"
)

type SongController struct {
	Logger  *slog.Logger
	Service domain.SongService
}

func NewSongController(logger *slog.Logger, svc domain.SongService) *SongController {
	return &SongController{
		Logger:  logger,
		Service: svc,
	}
}

// SongRequest is the request body for POST /songs and PUT /songs/{songID}.
type SongRequest struct {
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Instrument *string `json:"instrument"`
}

// Validate implements helpers.Validator.
func (s *SongRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(s.Artist) == "" {
		errs = append(errs, "artist is required")
	}
	return errs
}

func (c *SongController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateSong):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "song already in library")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "song not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// Add godoc
// @Summary Add a song to the caller's library
// @Description Adds a title+artist pair to the authenticated user's song library. Duplicate pairs are rejected with 409.
// @Tags songs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SongRequest true "Song data"
// @Success 201 {object} helpers.APIResponse "data contains the created song"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /songs [post]
func (c *SongController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req SongRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	song, err := c.Service.Add(r.Context(), userID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Artist), req.Instrument)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, song)
}

// List godoc
// @Summary List the caller's song library
// @Tags songs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of songs"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /songs [get]
func (c *SongController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	songs, err := c.Service.List(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if songs == nil {
		songs = []*domain.Song{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, songs)
}

// Update godoc
// @Summary Update a song in the caller's library
// @Tags songs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param songID path string true "Song ID (UUID)"
// @Param body body SongRequest true "Song data"
// @Success 200 {object} helpers.APIResponse "data contains the updated song"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /songs/{songID} [put]
func (c *SongController) Update(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("songID")
	if !uuidRegex.MatchString(songID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid songID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req SongRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	song, err := c.Service.Update(r.Context(), userID, songID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Artist), req.Instrument)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, song)
}

// Remove godoc
// @Summary Remove a song from the caller's library
// @Tags songs
// @Produce json
// @Security BearerAuth
// @Param songID path string true "Song ID (UUID)"
// @Success 204 "song removed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /songs/{songID} [delete]
func (c *SongController) Remove(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("songID")
	if !uuidRegex.MatchString(songID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid songID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.Remove(r.Context(), userID, songID); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
