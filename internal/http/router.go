// Package httpapi assembles the service-wide HTTP surface: the persona API
// plus the operational endpoints that live outside the authenticated chain.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"persona/internal/persona/handler"
)

// NewRouter builds the root router. The persona handler brings its own
// middleware chain; /healthz and /metrics stay outside it so probes and
// scrapers need no token.
func NewRouter(personas *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	personas.Register(r)
	return r
}
