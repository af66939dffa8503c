package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"jamqueuepro/internal/delivery/http/helpers"
	"jamqueuepro/internal/domain"
	"jamqueuepro/internal/services"
)

type AdminController struct {
	Logger  *slog.Logger
	Service services.AdminService
}

func NewAdminController(logger *slog.Logger, svc services.AdminService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// PaginatedUsersResponse is the data payload for GET /admin/users.
type PaginatedUsersResponse struct {
	Users []*domain.User         `json:"users"`
	Meta  helpers.PaginationMeta `json:"meta"`
}

// PaginatedActivityResponse is the data payload for GET /admin/activity.
type PaginatedActivityResponse struct {
	Entries []*domain.ActivityEntry `json:"entries"`
	Meta    helpers.PaginationMeta  `json:"meta"`
}

// SetRoleRequest is the request body for PATCH /admin/users/{userID}/roles.
type SetRoleRequest struct {
	Role   string `json:"role"`
	Assign bool   `json:"assign"`
}

// Validate implements helpers.Validator.
func (s *SetRoleRequest) Validate() []string {
	role := strings.TrimSpace(strings.ToLower(s.Role))
	switch role {
	case domain.RolePerformer, domain.RoleOrganizer, domain.RoleAdmin:
		s.Role = role
		return nil
	case "":
		return []string{"role is required"}
	default:
		return []string{"role must be \"performer\", \"organizer\", or \"admin\""}
	}
}

// SetActiveRequest is the request body for PATCH /admin/users/{userID}/active.
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// Validate implements helpers.Validator.
func (s *SetActiveRequest) Validate() []string {
	if s.Active == nil {
		return []string{"active is required"}
	}
	return nil
}

func (c *AdminController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains users and pagination meta"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	users, total, err := c.Service.ListUsers(r.Context(), p)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PaginatedUsersResponse{
		Users: users,
		Meta:  helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// SetUserRole godoc
// @Summary Assign or remove a role on a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body SetRoleRequest true "Role and whether to assign (true) or remove (false)"
// @Success 204 "role updated"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{userID}/roles [patch]
func (c *AdminController) SetUserRole(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}

	var req SetRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.SetUserRole(r.Context(), userID, req.Role, req.Assign); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetUserActive godoc
// @Summary Activate or deactivate a user
// @Description Deactivated users cannot log in; their existing signups are untouched.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body SetActiveRequest true "Desired active flag"
// @Success 204 "active flag updated"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{userID}/active [patch]
func (c *AdminController) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}

	var req SetActiveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.SetUserActive(r.Context(), userID, *req.Active); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ActivityReport godoc
// @Summary Activity analytics report
// @Description Aggregates signups, cancellations, rejections, and logins per day and signup activity per event over a date range.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (RFC 3339)"
// @Param to query string true "Range end (RFC 3339), exclusive"
// @Success 200 {object} helpers.APIResponse "data contains the report"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reports/activity [get]
func (c *AdminController) ActivityReport(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "from must be an RFC 3339 timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "to must be an RFC 3339 timestamp")
		return
	}

	report, err := c.Service.ActivityReport(r.Context(), from, to)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// ListActivity godoc
// @Summary Paginated audit log
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains audit entries and pagination meta"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/activity [get]
func (c *AdminController) ListActivity(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	entries, total, err := c.Service.ListActivity(r.Context(), p)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*domain.ActivityEntry{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PaginatedActivityResponse{
		Entries: entries,
		Meta:    helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}
