package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Prometheus struct {
	ApiMetrics
}

// NewPrometheusMetrics builds the catalog metrics and registers them on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) Prometheus {
	apiMetrics := NewApiMetrics()

	reg.MustRegister(
		apiMetrics.HTTP_RequestCounter,
		apiMetrics.API_RequestDuration,
		apiMetrics.API_ActiveRequestGauge,
		apiMetrics.HTTP_StatusCounter,
		apiMetrics.ItemLookupCounter,
		apiMetrics.MemoryAllocGauge,
		apiMetrics.MemorySysGauge,
		apiMetrics.HostFreeMemoryGauge,
	)

	return Prometheus{
		ApiMetrics: apiMetrics,
	}
}

type ApiMetrics struct {
	HTTP_RequestCounter    *prometheus.CounterVec
	API_RequestDuration    *prometheus.HistogramVec
	API_ActiveRequestGauge prometheus.Gauge
	HTTP_StatusCounter     *prometheus.CounterVec
	ItemLookupCounter      *prometheus.CounterVec
	MemoryAllocGauge       prometheus.Gauge
	MemorySysGauge         prometheus.Gauge
	HostFreeMemoryGauge    prometheus.Gauge
}

func NewApiMetrics() ApiMetrics {
	return ApiMetrics{
		HTTP_RequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PREFIX_METRIC + "http_request_counter",
			Help: "Count of requests served per handler",
		},
			[]string{"handler_name"},
		),
		API_RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    PREFIX_METRIC + "response_time_seconds",
				Help:    "Histogram of response times for handler in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"handler_name"},
		),
		API_ActiveRequestGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: PREFIX_METRIC + "active_requests",
			Help: "Current number of active requests being handled",
		}),
		HTTP_StatusCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: PREFIX_METRIC + "http_request_status_count",
				Help: "Count of status classes returned per handler.",
			},
			[]string{"handler_name", "status"},
		),
		ItemLookupCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: PREFIX_METRIC + "item_lookup_count",
				Help: "Count of item lookups by outcome.",
			},
			[]string{"status"},
		),
		MemoryAllocGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: PREFIX_METRIC + "app_memory_alloc_bytes",
			Help: "Current memory allocated by the application in bytes.",
		}),
		MemorySysGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: PREFIX_METRIC + "app_memory_sys_bytes",
			Help: "Memory obtained from the system by the application in bytes.",
		}),
		HostFreeMemoryGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: PREFIX_METRIC + "host_memory_free_bytes",
			Help: "Free plus buffer memory reported by the host in bytes.",
		}),
	}
}
