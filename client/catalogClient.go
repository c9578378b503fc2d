package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"k8s-demo/models"
	"k8s-demo/telemetryfs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnreachable covers every failed call: network errors, non-2xx statuses
// and undecodable bodies.
var ErrUnreachable = errors.New("catalog service unreachable")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrUnreachable
}

// CatalogClient talks to the catalog service. It never retries and uses the
// transport's default timeouts.
type CatalogClient struct {
	BaseURL string
	HTTP    *http.Client
	Tracer  trace.Tracer
}

func NewCatalogClient(baseURL string, httpClient *http.Client, tracer trace.Tracer) *CatalogClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &CatalogClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpClient,
		Tracer:  tracer,
	}
}

func (c *CatalogClient) FetchInfo(ctx context.Context) (models.ServerInfo, error) {
	var info models.ServerInfo
	err := c.get(ctx, "/api/info", &info)
	return info, err
}

func (c *CatalogClient) FetchItems(ctx context.Context) (models.ItemList, error) {
	var list models.ItemList
	err := c.get(ctx, "/api/items", &list)
	return list, err
}

func (c *CatalogClient) CheckHealth(ctx context.Context) (models.HealthStatus, error) {
	var health models.HealthStatus
	err := c.get(ctx, "/health", &health)
	return health, err
}

func (c *CatalogClient) get(ctx context.Context, path string, out any) error {
	ctx, span := c.Tracer.Start(ctx, "CatalogClient.GET "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := c.do(ctx, path, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *CatalogClient) do(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %w", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")
	telemetryfs.InjectHeaders(ctx, req.Header)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrUnreachable, path, err)
	}
	return nil
}
