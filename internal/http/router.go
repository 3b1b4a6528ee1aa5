// Package http assembles the service router: public health and metrics
// endpoints, and the authenticated registration surface.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"partnerhub/internal/platform/middleware"
	"partnerhub/internal/registration/handler"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Registration   *handler.Handler
	TokenValidator middleware.TokenValidator
	Logger         *slog.Logger
	Health         func() error
}

// NewRouter builds the service handler tree.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", healthz(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.TokenValidator, deps.Logger))
		deps.Registration.Register(r)
	})

	return r
}

func healthz(check func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unhealthy"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
