package telemetryfs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.8.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// TracerConfig selects where catalog spans are exported and how they are
// labelled. SamplingRatio is the share of trace IDs kept, 0 to 1.
type TracerConfig struct {
	ServiceName      string
	ServiceNamespace string
	Endpoint         string
	Environment      string
	SamplingRatio    float64
}

// Tracer pairs the tracer handed to the catalog code with the provider and
// exporter that must be flushed on exit. Both are nil for a noop Tracer.
type Tracer struct {
	OTelTracer trace.Tracer

	provider *sdkTrace.TracerProvider
	exporter *otlptrace.Exporter
}

// NewNoopTracer is used when tracing is disabled and in tests.
func NewNoopTracer(name string) Tracer {
	return Tracer{OTelTracer: noop.NewTracerProvider().Tracer(name)}
}

// Shutdown flushes pending spans. Errors from the provider and the exporter
// are both reported.
func (t Tracer) Shutdown(ctx context.Context) error {
	var errs []error
	if t.provider != nil {
		if err := t.provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if t.exporter != nil {
		if err := t.exporter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("span exporter: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewTracer exports spans over OTLP/gRPC to cfg.Endpoint and installs the
// provider and the B3 propagator as the process globals.
func NewTracer(ctx context.Context, cfg TracerConfig, version string) (Tracer, error) {
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	))
	if err != nil {
		return Tracer{}, fmt.Errorf("otlp exporter for %s: %w", cfg.Endpoint, err)
	}

	provider := sdkTrace.NewTracerProvider(
		sdkTrace.WithBatcher(exporter),
		sdkTrace.WithSampler(sdkTrace.TraceIDRatioBased(cfg.SamplingRatio)),
		sdkTrace.WithResource(catalogResource(cfg, version)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(B3Propagator())

	return Tracer{
		OTelTracer: provider.Tracer(cfg.ServiceName),
		provider:   provider,
		exporter:   exporter,
	}, nil
}

// B3Propagator is the propagator used on both sides of the catalog API.
func B3Propagator() propagation.TextMapPropagator {
	return b3.New(b3.WithInjectEncoding(b3.B3MultipleHeader))
}

func catalogResource(cfg TracerConfig, version string) *resource.Resource {
	instance := uuid.Must(uuid.NewV4()).String()
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceNamespaceKey.String(cfg.ServiceNamespace),
		semconv.ServiceVersionKey.String(version),
		semconv.ServiceInstanceIDKey.String(instance),
		semconv.DeploymentEnvironmentKey.String(cfg.Environment),
	)
}

type tracerKey struct{}

// FromContext returns the tracer stored by WithTracer. Handlers only run
// behind TracerToContextMiddleware, so a missing tracer is a wiring bug and
// panics.
func FromContext(ctx context.Context) trace.Tracer {
	if ctx == nil {
		panic("telemetryfs: nil context")
	}
	t, ok := ctx.Value(tracerKey{}).(trace.Tracer)
	if !ok {
		panic("telemetryfs: context carries no tracer")
	}
	return t
}

// Start opens a span named spanName with the request's tracer.
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return FromContext(ctx).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

func WithTracer(parent context.Context, t trace.Tracer) context.Context {
	return context.WithValue(parent, tracerKey{}, t)
}

// HandleUnexpectedError records err on the active span and logs it.
func HandleUnexpectedError(ctx context.Context, err error, fields ...zap.Field) {
	trace.SpanFromContext(ctx).RecordError(err)
	Error(ctx, "unexpected error", err, fields...)
}

// TracerToContextMiddleware associates a tracer with the current context and
// continues any B3 trace carried by the request headers.
func TracerToContextMiddleware(tracer trace.Tracer) func(next http.Handler) http.Handler {
	propagator := B3Propagator()
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagationHeader(r.Header))
			r = r.WithContext(WithTracer(ctx, tracer))
			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
