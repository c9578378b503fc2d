package handler

import (
	"net/http"

	"k8s-demo/telemetryfs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// NewRouter mounts the catalog endpoints behind the logging, tracing, RED
// metrics and any-origin CORS middlewares. A trailing slash is ignored, so
// /api/items/ serves the list.
func NewRouter(logger *zap.Logger, tracer trace.Tracer, red *telemetryfs.RedMetricsMiddleware, h *CatalogHandle) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Recoverer,
		middleware.StripSlashes,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}),
		telemetryfs.LoggerToContextMiddleware(logger),
		telemetryfs.TracerToContextMiddleware(tracer),
		red.Handle(),
	)

	router.Get("/health", h.Health())
	router.Get("/api/items", h.ListItems())
	router.Get("/api/items/{id}", h.GetItem())
	router.Get("/api/info", h.Info())

	return router
}
