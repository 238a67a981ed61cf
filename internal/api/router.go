package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Arbiter/internal/config"
	"github.com/MikeSquared-Agency/Arbiter/internal/decider"
	"github.com/MikeSquared-Agency/Arbiter/internal/store"
)

// NewRouter builds the public API. s may be nil, in which case decision
// history endpoints answer 503.
func NewRouter(d *decider.Decider, s store.Store, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))

	decisions := NewDecisionsHandler(d, s)
	chooser := NewChooseHandler(d)
	curves := NewCurvesHandler()
	profiles := NewProfilesHandler(d)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ClientIDMiddleware)

		r.Post("/decisions", decisions.Create)
		r.Get("/decisions", decisions.List)
		r.Get("/decisions/{id}", decisions.Explain)

		r.Post("/choose", chooser.Choose)
		r.Post("/curves/evaluate", curves.Evaluate)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/profiles", profiles.List)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
