// Package router wires the HTTP surface together.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/truthguard/truthguard/internal/http/handlers"
	"github.com/truthguard/truthguard/internal/threats"
	"github.com/truthguard/truthguard/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger         *logging.Logger
	Sessions       *handlers.SessionsHandler
	History        *handlers.HistoryHandler
	Contacts       *handlers.ContactsHandler
	Detectors      *handlers.DetectorsHandler
	Threats        *threats.Handler
	MetricsHandler http.Handler
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/sessions", func(s chi.Router) {
			s.Post("/", cfg.Sessions.Create)
			s.Route("/{id}", func(one chi.Router) {
				one.Get("/", cfg.Sessions.Get)
				one.Post("/detector", cfg.Sessions.SwitchDetector)
				one.Post("/text", cfg.Sessions.SetText)
				one.Post("/media", cfg.Sessions.UploadMedia)
				one.Post("/media/url", cfg.Sessions.AddMediaURL)
				one.Delete("/media/{itemID}", cfg.Sessions.RemoveMedia)
				one.Delete("/media", cfg.Sessions.ClearMedia)
				one.Post("/analyze", cfg.Sessions.Analyze)
				one.Post("/reset", cfg.Sessions.Reset)
				one.Post("/restore/{entryID}", cfg.Sessions.Restore)
			})
		})

		api.Get("/detectors", cfg.Detectors.List)

		api.Route("/history", func(h chi.Router) {
			h.Get("/", cfg.History.List)
			h.Delete("/{id}", cfg.History.Remove)
			h.Delete("/", cfg.History.Clear)
		})

		api.Route("/contacts", func(c chi.Router) {
			c.Get("/", cfg.Contacts.List)
			c.Post("/", cfg.Contacts.Add)
			c.Delete("/{id}", cfg.Contacts.Delete)
			c.Post("/{id}/share-location", cfg.Contacts.ShareLocation)
		})

		if cfg.Threats != nil {
			api.Get("/threats", cfg.Threats.HandleList)
			api.Get("/threats/live", cfg.Threats.HandleLive)
		}
	})

	return r
}
