package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/objectflow/ingester/internals/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the HTTP routing tree: operational endpoints at the root and the
// manual ingestion entrypoint under /ingester.
func New(ingesterHandler *handlers.IngesterHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/isalive", handlers.IsAlive)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/ingester", func(r chi.Router) {
		r.Post("/file", ingesterHandler.ReceiveFile)
	})

	return r
}

// NewServer wraps the router in an http.Server with sane timeouts.
func NewServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
