package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evindia/evbot/internal/catalog"
	"github.com/evindia/evbot/internal/conversation"
	"github.com/evindia/evbot/internal/llm"
	"github.com/evindia/evbot/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	Catalog        *catalog.Service
	Store          conversation.Store
	Assistant      *llm.Assistant
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	h := newHandler(cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/health", h.Health)

	r.Route("/api", func(api chi.Router) {
		api.Get("/scooters", h.ListScooters)
		api.Get("/scooters/{slug}", h.GetScooter)
		api.Get("/dealers", h.ListDealers)
		api.Get("/faqs", h.ListFAQs)
		api.Get("/subsidies", h.ListSubsidies)
		api.Get("/subsidies/{state}", h.GetSubsidy)
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
