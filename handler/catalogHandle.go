package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"k8s-demo/models"
	"k8s-demo/service"
	"k8s-demo/telemetry"
	"k8s-demo/telemetryfs"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const notFoundMessage = "Item not found"

type CatalogHandle struct {
	Service *service.CatalogService
	Metrics telemetry.Prometheus
}

func NewCatalogHandle(service *service.CatalogService, metrics telemetry.Prometheus) *CatalogHandle {
	return &CatalogHandle{
		Service: service,
		Metrics: metrics,
	}
}

func (h *CatalogHandle) Health() http.HandlerFunc {
	return h.instrument("health", func(w http.ResponseWriter, r *http.Request) int {
		return writeJSON(w, r, http.StatusOK, h.Service.Health(r.Context()))
	})
}

func (h *CatalogHandle) ListItems() http.HandlerFunc {
	return h.instrument("list_items", func(w http.ResponseWriter, r *http.Request) int {
		return writeJSON(w, r, http.StatusOK, h.Service.ListItems(r.Context()))
	})
}

func (h *CatalogHandle) GetItem() http.HandlerFunc {
	return h.instrument("get_item", func(w http.ResponseWriter, r *http.Request) int {
		ctx := r.Context()
		rawID := chi.URLParam(r, "id")

		span := trace.SpanFromContext(ctx)
		span.SetAttributes(attribute.String("item.raw_id", rawID))

		item, err := h.Service.GetItem(ctx, rawID)
		if errors.Is(err, service.ErrItemNotFound) {
			span.SetStatus(codes.Error, err.Error())
			telemetryfs.Logger(ctx).Info("item not found", zap.String("id", rawID))
			return writeJSON(w, r, http.StatusNotFound, models.ErrorResponse{Error: notFoundMessage})
		}

		return writeJSON(w, r, http.StatusOK, item)
	})
}

func (h *CatalogHandle) Info() http.HandlerFunc {
	return h.instrument("info", func(w http.ResponseWriter, r *http.Request) int {
		return writeJSON(w, r, http.StatusOK, h.Service.Info(r.Context()))
	})
}

// instrument wraps fn with a span from the request's tracer and the
// per-handler metrics. fn returns the status code it wrote.
func (h *CatalogHandle) instrument(name string, fn func(w http.ResponseWriter, r *http.Request) int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx, span := telemetryfs.Start(r.Context(), "Handler."+name, attribute.String("http.route_name", name))
		defer span.End()

		h.Metrics.API_ActiveRequestGauge.Inc()
		defer h.Metrics.API_ActiveRequestGauge.Dec()

		status := fn(w, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", status))
		h.Metrics.HTTP_StatusCounter.WithLabelValues(name, statusClass(status)).Inc()
		h.Metrics.HTTP_RequestCounter.WithLabelValues(name).Inc()
		h.Metrics.API_RequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) int {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		trace.SpanFromContext(r.Context()).RecordError(err)
		telemetryfs.Error(r.Context(), "encoding response", err, zap.String("path", r.URL.Path))
	}
	return status
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
