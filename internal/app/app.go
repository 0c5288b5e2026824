package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lanelink/lanelink/internal/config"
	"github.com/lanelink/lanelink/internal/email"
	"github.com/lanelink/lanelink/internal/invitation"
	"github.com/lanelink/lanelink/internal/template"
)

// App holds the application state
type App struct {
	Config      *config.Config
	Repo        *invitation.Repository
	Templates   *template.Store
	Aggregator  *invitation.Aggregator
	EmailClient *email.Client
	Router      http.Handler

	server *http.Server
}

// New creates and initializes a new application instance
func New(cfg *config.Config) *App {
	setupLogger(cfg.LogLevel)

	log.Info().Msg("Initializing LaneLink invitation service")
	log.Info().Interface("config", cfg.RedactedValues()).Msg("Configuration loaded")

	if !cfg.EmailEnabled() {
		log.Warn().Msg("SENDGRID_API_KEY not set: email dispatch runs in dev mode (payloads are logged)")
	}

	templates := template.NewStore()
	log.Info().Int("templates", len(templates.ListAll())).Msg("Template store seeded")

	repo := invitation.NewRepository(cfg.BaseURL, time.Duration(cfg.InviteTTLDays)*24*time.Hour)
	aggregator := invitation.NewAggregator(repo)

	emailClient := email.NewClient(cfg.SendGridAPIKey, cfg.SendGridFromEmail, invitation.DefaultInviterCompany, cfg.EmailTimeoutMS)
	service := invitation.NewService(repo, templates, emailClient)

	app := &App{
		Config:      cfg,
		Repo:        repo,
		Templates:   templates,
		Aggregator:  aggregator,
		EmailClient: emailClient,
		Router:      NewRouter(cfg, service, repo, aggregator, templates, emailClient),
	}

	log.Info().Msg("Application initialized successfully")
	return app
}

// Start starts the HTTP server and blocks until it exits.
func (a *App) Start() error {
	addr := a.Config.HTTPAddr
	log.Info().Str("addr", addr).Msg("Starting HTTP server")

	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server. Invitation state is process
// memory only and is lost here; that is the documented persistence model.
func (a *App) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down application")
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// setupLogger configures the global logger
func setupLogger(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Debug().Str("level", level).Msg("Logger configured")
}
