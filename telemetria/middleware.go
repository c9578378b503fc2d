package telemetria

import (
	"k8s-demo/telemetryfs"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// LoggerToContextMiddleware adds a zap.Logger to the request context for each incoming request.
func LoggerToContextMiddleware(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			req = req.WithContext(telemetryfs.WithLogger(req.Context(), logger))
			c.SetRequest(req)
			return next(c)
		}
	}
}

// TracerToContextMiddleware associates a tracer with the request context and
// opens a server span for the matched route.
func TracerToContextMiddleware(tracer trace.Tracer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := telemetryfs.WithTracer(req.Context(), tracer)

			ctx, span := tracer.Start(ctx, req.Method+" "+c.Path(), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
