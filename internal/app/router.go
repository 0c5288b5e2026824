package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lanelink/lanelink/internal/apperrors"
	"github.com/lanelink/lanelink/internal/config"
	"github.com/lanelink/lanelink/internal/email"
	"github.com/lanelink/lanelink/internal/invitation"
	"github.com/lanelink/lanelink/internal/template"
)

// NewRouter creates and configures the Chi router with all middleware and routes
func NewRouter(
	cfg *config.Config,
	svc *invitation.Service,
	repo *invitation.Repository,
	agg *invitation.Aggregator,
	templates *template.Store,
	emailClient *email.Client,
) *chi.Mux {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RealIP)
	r.Use(apperrors.RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.BaseURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check routes
	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", handleReadyz(repo))

	// API routes - Invitations
	r.Route("/api/v1/invitations", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Creation is rate limited per IP so one portal session cannot
		// flood the email provider.
		r.With(CreateRateLimitMiddleware(cfg.RateLimitRPM)).Post("/", invitation.HandleCreate(svc))

		r.Get("/", invitation.HandleList(repo))
		r.Get("/analytics", invitation.HandleAnalytics(agg))
		r.Get("/by-referral/{code}", invitation.HandleFindByReferral(repo))
		r.Get("/{id}", invitation.HandleGet(repo))
		r.Get("/{id}/valid", invitation.HandleValidity(repo))
		r.Post("/{id}/events", invitation.HandleEvent(repo))
	})

	// API routes - Templates (read-only; additions are seeded in code)
	r.Route("/api/v1/templates", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", template.HandleList(templates))
		r.Get("/{id}", template.HandleGet(templates))
	})

	// API routes - Provider message status
	r.Route("/api/v1/messages", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/{id}", email.HandleMessageStatus(emailClient))
	})

	return r
}

// handleHealthz returns a simple liveness check
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteSuccess(w, r, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// handleReadyz reports readiness. The store is process memory, so readiness
// only confirms the service is up and reports the record count.
func handleReadyz(repo *invitation.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"status":      "ready",
			"invitations": repo.Count(),
		})
	}
}
