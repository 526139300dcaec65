// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preilly17/VacationSync-sub009/internal/api/handler"
	"github.com/preilly17/VacationSync-sub009/internal/api/middleware"
	"github.com/preilly17/VacationSync-sub009/internal/service"
)

// Handlers bundles the handlers the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Trip     *handler.TripHandler
	Activity *handler.ActivityHandler
	Proposal *handler.ProposalHandler
	Expense  *handler.ExpenseHandler
	Search   *handler.SearchHandler
	ServeWS  http.HandlerFunc
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, authService service.AuthService, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(handler.DefaultTimeout))
	r.Use(middleware.Auth(authService))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)
		r.Get("/me", h.Auth.Me)
	})

	// Travel search proxy (public, no membership required)
	r.Route("/search", func(r chi.Router) {
		r.Get("/flights", h.Search.Flights)
		r.Get("/hotels", h.Search.Hotels)
		r.Get("/activities", h.Search.Activities)
	})

	// Trip routes, all behind authentication
	r.Route("/trips", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/", h.Trip.Create)
		r.Get("/", h.Trip.List)
		r.Post("/join", h.Trip.Join)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", h.Trip.Get)
			r.Get("/members", h.Trip.Members)

			r.Post("/activities", h.Activity.Propose)
			r.Get("/activities", h.Activity.List)
			r.Post("/activities/{activityID}/respond", h.Activity.Respond)

			r.Post("/proposals", h.Proposal.Add)
			r.Get("/proposals", h.Proposal.List)
			r.Post("/proposals/{proposalID}/vote", h.Proposal.Vote)

			r.Post("/expenses", h.Expense.Create)
			r.Get("/expenses", h.Expense.List)
			r.Post("/expenses/{expenseID}/participants/{userID}/paid", h.Expense.MarkPaid)
		})
	})

	// Trip event stream
	r.With(middleware.RequireAuth).Get("/ws", h.ServeWS)

	return r
}
