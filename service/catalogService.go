package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"k8s-demo/config"
	"k8s-demo/models"
	"k8s-demo/repository"
	"k8s-demo/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName = "k8s-demo-backend"
	Version     = "1.0.0"

	StatusHealthy = "healthy"

	// TimestampLayout is ISO-8601 in UTC with millisecond precision.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// ErrItemNotFound is returned when no stored item matches the requested id.
var ErrItemNotFound = errors.New("item not found")

type CatalogService struct {
	ItemRepo *repository.ItemRepository
	Tracer   trace.Tracer
	Metrics  telemetry.Prometheus

	environ func() map[string]string
	now     func() time.Time
}

type Option func(*CatalogService)

// WithEnviron replaces the source of the informational environment values.
func WithEnviron(environ func() map[string]string) Option {
	return func(s *CatalogService) {
		s.environ = environ
	}
}

// WithClock replaces the time source used for health timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *CatalogService) {
		s.now = now
	}
}

func NewCatalogService(repo *repository.ItemRepository, tracer trace.Tracer, metrics telemetry.Prometheus, opts ...Option) *CatalogService {
	s := &CatalogService{
		ItemRepo: repo,
		Tracer:   tracer,
		Metrics:  metrics,
		environ:  config.Environ,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CatalogService) Health(ctx context.Context) models.HealthStatus {
	_, span := s.Tracer.Start(ctx, "Service.Health")
	defer span.End()

	return models.HealthStatus{
		Status:    StatusHealthy,
		Timestamp: s.now().UTC().Format(TimestampLayout),
	}
}

func (s *CatalogService) ListItems(ctx context.Context) models.ItemList {
	ctx, span := s.Tracer.Start(ctx, "Service.ListItems")
	defer span.End()

	items := s.ItemRepo.FetchItems(ctx)
	return models.ItemList{
		Items: items,
		Count: len(items),
	}
}

// GetItem resolves rawID to a stored item. An id that does not parse is
// treated exactly like an id that matches nothing.
func (s *CatalogService) GetItem(ctx context.Context, rawID string) (models.Item, error) {
	ctx, span := s.Tracer.Start(ctx, "Service.GetItem", trace.WithAttributes(attribute.String("item.raw_id", rawID)))
	defer span.End()

	id, ok := ParseItemID(rawID)
	if !ok {
		return s.notFound(span)
	}

	item, found := s.ItemRepo.FetchItem(ctx, id)
	if !found {
		return s.notFound(span)
	}

	s.Metrics.ItemLookupCounter.WithLabelValues(telemetry.StatusHit).Inc()
	return item, nil
}

func (s *CatalogService) notFound(span trace.Span) (models.Item, error) {
	s.Metrics.ItemLookupCounter.WithLabelValues(telemetry.StatusMiss).Inc()
	span.SetStatus(codes.Error, ErrItemNotFound.Error())
	return models.Item{}, ErrItemNotFound
}

// Info reads the runtime environment on every call.
func (s *CatalogService) Info(ctx context.Context) models.ServerInfo {
	_, span := s.Tracer.Start(ctx, "Service.Info")
	defer span.End()

	rt := config.ParseRuntime(s.environ())
	return models.ServerInfo{
		Service:  ServiceName,
		Version:  Version,
		Hostname: rt.Hostname,
		PodName:  rt.PodName,
		NodeEnv:  rt.NodeEnv,
	}
}

// ParseItemID reads a leading base-10 integer from raw. Leading whitespace and
// a sign are accepted and anything after the digits is ignored, so "2abc"
// yields 2. It reports false when raw has no leading digits or overflows.
func ParseItemID(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return id, true
}
