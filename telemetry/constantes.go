package telemetry

const (
	// StatusOK is a label for successful metrics in Prometheus.
	StatusOK = "ok"
	// StatusError is a label for error-related metrics in Prometheus.
	StatusError = "error"
	// StatusHit is a label for an item lookup that found a record.
	StatusHit = "hit"
	// StatusMiss is a label for an item lookup that found nothing.
	StatusMiss = "miss"
)

const (
	PREFIX_METRIC = "catalog_"
)
