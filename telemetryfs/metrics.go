package telemetryfs

import (
	"net/http"
	"strconv"
	"time"

	"k8s-demo/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewMetricsServer(options ...Option) *http.Server {
	opts := defaultOptions()
	for _, option := range options {
		option(&opts)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		opts.register,
		promhttp.HandlerFor(opts.gatherer, promhttp.HandlerOpts{}),
	))

	return &http.Server{
		Handler:           mux,
		Addr:              opts.addr,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

type RedMetricsMiddleware struct {
	httpServerRequestDuration *prometheus.HistogramVec
}

func NewRedMetricsMiddleware(options ...Option) *RedMetricsMiddleware {
	opts := defaultOptions()
	for _, option := range options {
		option(&opts)
	}

	metrics := RedMetricsMiddleware{
		httpServerRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    telemetry.PREFIX_METRIC + "http_server_request_duration_ms",
				Help:    "Request duration histogram for HTTP server in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 300, 500, 1000, 5000, 10000},
			},
			[]string{"http_response_status_code", "http_request_method", "http_route"},
		),
	}

	opts.register.MustRegister(metrics.httpServerRequestDuration)

	return &metrics
}

func (m *RedMetricsMiddleware) Handle() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dw := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			next.ServeHTTP(dw, r)

			pathPattern := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				pathPattern = rctx.RoutePattern()
			}

			m.httpServerRequestDuration.WithLabelValues(
				strconv.Itoa(dw.Status()),
				r.Method,
				pathPattern,
			).Observe(float64(time.Since(start).Microseconds()) / 1000)
		})
	}
}
