package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ignite/newsletter/internal/metrics"
)

// SetupRoutes configures the router. gatherer serves the /metrics scrape;
// collector feeds the per-request middleware. Both may be nil in tests.
func SetupRoutes(h *Handlers, collector *metrics.Collector, gatherer prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if collector != nil {
		r.Use(metrics.Middleware(collector))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", h.Index)
	r.Get("/health-check", h.HealthCheck)
	r.Post("/subscribe", h.Subscribe)
	r.Get("/subscriptions/confirm", h.Confirm)
	r.Post("/delivery", h.Deliver)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))
	}

	return r
}
