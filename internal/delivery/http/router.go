package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/controllers"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/delivery/http/middleware"
	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

// Controllers bundles the controllers wired into the router.
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Event      *controllers.EventController
	Enrollment *controllers.EnrollmentController
	Waitlist   *controllers.WaitlistController
	CheckIn    *controllers.CheckInController
	Rating     *controllers.RatingController
	Report     *controllers.ReportController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /me", auth(c.User.GetMe))

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events", c.Event.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetEventByID)
	mux.HandleFunc("GET /events/{eventID}/capacity", c.Event.GetEventCapacity)
	mux.HandleFunc("POST /events/{eventID}/cancel", auth(c.Event.CancelEvent))
	mux.HandleFunc("POST /events/{eventID}/finish", auth(c.Event.FinishEvent))

	// Enrollments
	mux.HandleFunc("POST /events/{eventID}/enrollments", auth(c.Enrollment.Enroll))
	mux.HandleFunc("DELETE /events/{eventID}/enrollments", auth(c.Enrollment.CancelEnrollment))
	mux.HandleFunc("GET /me/enrollments", auth(c.Enrollment.ListMyEnrollments))

	// Waitlist
	mux.HandleFunc("POST /events/{eventID}/waitlist", auth(c.Waitlist.JoinWaitlist))
	mux.HandleFunc("GET /events/{eventID}/waitlist", auth(c.Waitlist.ListWaitlist))

	// Check-in
	mux.HandleFunc("POST /checkin", c.CheckIn.CheckIn)

	// Ratings
	mux.HandleFunc("POST /events/{eventID}/ratings", auth(c.Rating.RateEvent))
	mux.HandleFunc("GET /events/{eventID}/ratings", c.Rating.ListRatings)

	// Reports
	mux.HandleFunc("GET /events/{eventID}/report", auth(c.Report.GetEventReport))
	mux.HandleFunc("GET /reports/categories", c.Report.GetCategoryStats)

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
