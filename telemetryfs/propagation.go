package telemetryfs

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/propagation"
)

func propagationHeader(h http.Header) propagation.HeaderCarrier {
	return propagation.HeaderCarrier(h)
}

// InjectHeaders writes the span context of ctx into h as B3 headers.
func InjectHeaders(ctx context.Context, h http.Header) {
	B3Propagator().Inject(ctx, propagationHeader(h))
}
