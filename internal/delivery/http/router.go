package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"jamqueuepro/internal/delivery/http/controllers"
	"jamqueuepro/internal/delivery/http/helpers"
	"jamqueuepro/internal/delivery/http/middleware"
	"jamqueuepro/internal/domain"
)

// Controllers bundles the route handlers for NewRouter.
type Controllers struct {
	Auth   *controllers.AuthController
	User   *controllers.UserController
	Song   *controllers.SongController
	Venue  *controllers.VenueController
	Event  *controllers.EventController
	Signup *controllers.SignupController
	Admin  *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes.
// db is used by the health check; pass the connection the repositories use.
func NewRouter(logger *slog.Logger, verifier domain.TokenVerifier, db *sql.DB, c Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	organizer := middleware.RequireRole(domain.RoleOrganizer)
	admin := middleware.RequireRole(domain.RoleAdmin)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Profile
	mux.HandleFunc("GET /users/me", auth(c.User.Me))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))

	// Song library
	mux.HandleFunc("POST /songs", auth(c.Song.Add))
	mux.HandleFunc("GET /songs", auth(c.Song.List))
	mux.HandleFunc("PUT /songs/{songID}", auth(c.Song.Update))
	mux.HandleFunc("DELETE /songs/{songID}", auth(c.Song.Remove))

	// Venues: reads for any authenticated user, writes for organizers
	mux.HandleFunc("GET /venues", auth(c.Venue.List))
	mux.HandleFunc("GET /venues/{venueID}", auth(c.Venue.Get))
	mux.HandleFunc("POST /venues", auth(organizer(c.Venue.Create)))
	mux.HandleFunc("PUT /venues/{venueID}", auth(organizer(c.Venue.Update)))
	mux.HandleFunc("DELETE /venues/{venueID}", auth(organizer(c.Venue.Delete)))

	// Events
	mux.HandleFunc("GET /events", auth(c.Event.List))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.Get))
	mux.HandleFunc("POST /events", auth(organizer(c.Event.Create)))
	mux.HandleFunc("PATCH /events/{eventID}", auth(organizer(c.Event.Update)))
	mux.HandleFunc("DELETE /events/{eventID}", auth(organizer(c.Event.Delete)))

	// Sign-up queue
	mux.HandleFunc("POST /events/{eventID}/signups", auth(c.Signup.RequestSignup))
	mux.HandleFunc("GET /events/{eventID}/signups", auth(c.Signup.ListSignups))
	mux.HandleFunc("GET /events/{eventID}/signups/me", auth(c.Signup.MySignup))
	mux.HandleFunc("PATCH /signups/{signupID}", auth(c.Signup.UpdateSignup))
	mux.HandleFunc("DELETE /signups/{signupID}", auth(c.Signup.CancelSignup))

	// Admin
	mux.HandleFunc("GET /admin/users", auth(admin(c.Admin.ListUsers)))
	mux.HandleFunc("PATCH /admin/users/{userID}/roles", auth(admin(c.Admin.SetUserRole)))
	mux.HandleFunc("PATCH /admin/users/{userID}/active", auth(admin(c.Admin.SetUserActive)))
	mux.HandleFunc("GET /admin/reports/activity", auth(admin(c.Admin.ActivityReport)))
	mux.HandleFunc("GET /admin/activity", auth(admin(c.Admin.ListActivity)))

	// Ops
	mux.HandleFunc("GET /healthz", healthz(db))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStorageUnavailable, "database unreachable")
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
