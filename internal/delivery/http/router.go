package http

import (
	"log/slog"
	"net/http"

	"sportshub/internal/delivery/http/controllers"
	"sportshub/internal/delivery/http/middleware"
	"sportshub/internal/domain"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth   *controllers.AuthController
	Venue  *controllers.VenueController
	Event  *controllers.EventController
	Meta   *controllers.MetaController
	Tokens domain.TokenVerifier
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(c.Tokens, logger)

	// Meta
	mux.HandleFunc("GET /health", c.Meta.Health)
	mux.HandleFunc("GET /sports", c.Meta.ListSports)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /auth/me", auth(c.Auth.Me))

	// Venues
	mux.HandleFunc("POST /venues", auth(c.Venue.CreateVenue))
	mux.HandleFunc("GET /venues", auth(c.Venue.ListVenues))
	mux.HandleFunc("GET /venues/{venueID}", auth(c.Venue.GetVenueByID))
	mux.HandleFunc("PATCH /venues/{venueID}", auth(c.Venue.UpdateVenue))
	mux.HandleFunc("DELETE /venues/{venueID}", auth(c.Venue.DeleteVenue))

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events", auth(c.Event.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEventByID))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with metrics, request logging and CORS.
func NewHandler(c Controllers, logger *slog.Logger, allowedOrigins []string) http.Handler {
	var h http.Handler = NewRouter(c, logger)
	h = middleware.MetricsMiddleware(h)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.CORS(allowedOrigins, h)
}
