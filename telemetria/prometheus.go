package telemetria

import (
	"k8s-demo/telemetry"

	"github.com/prometheus/client_golang/prometheus"
)

// FetchMetrics counts the frontend's calls to the catalog service.
type FetchMetrics struct {
	FetchCounter *prometheus.CounterVec
}

func NewFetchMetrics(reg prometheus.Registerer) *FetchMetrics {
	m := &FetchMetrics{
		FetchCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frontend_backend_fetch_count",
				Help: "Count of calls to the catalog service by endpoint and outcome.",
			},
			[]string{"endpoint", "status"},
		),
	}
	reg.MustRegister(m.FetchCounter)
	return m
}

func (m *FetchMetrics) ObserveFetch(endpoint string, err error) {
	status := telemetry.StatusOK
	if err != nil {
		status = telemetry.StatusError
	}
	m.FetchCounter.WithLabelValues(endpoint, status).Inc()
}
