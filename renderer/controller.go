package renderer

import (
	"context"
	"sync"

	"k8s-demo/models"

	"go.uber.org/zap"
)

const (
	LabelConnected        = "Connected"
	LabelConnectionFailed = "Connection Failed"

	MessageUnreachable = "Unable to connect to backend"

	NoticeRefreshing    = "Refreshing data..."
	NoticeRefreshed     = "Data refreshed!"
	NoticeHealthyPrefix = "✓ Backend healthy: "
	NoticeHealthFailed  = "✗ Backend health check failed"
)

// CatalogAPI is the part of the catalog client the controller drives.
type CatalogAPI interface {
	FetchInfo(ctx context.Context) (models.ServerInfo, error)
	FetchItems(ctx context.Context) (models.ItemList, error)
	CheckHealth(ctx context.Context) (models.HealthStatus, error)
}

// FetchObserver is told the outcome of every call the controller makes.
type FetchObserver interface {
	ObserveFetch(endpoint string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveFetch(string, error) {}

// Controller owns the presentation surface and turns catalog responses, or
// their failures, into surface state. No method returns an error: every
// failure is rendered.
type Controller struct {
	api      CatalogAPI
	surface  Surface
	notices  *Notifier
	logger   *zap.Logger
	observer FetchObserver

	initOnce sync.Once
}

type ControllerOption func(*Controller)

func WithObserver(o FetchObserver) ControllerOption {
	return func(c *Controller) {
		c.observer = o
	}
}

func WithLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func NewController(api CatalogAPI, surface Surface, notices *Notifier, opts ...ControllerOption) *Controller {
	c := &Controller{
		api:      api,
		surface:  surface,
		notices:  notices,
		logger:   zap.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init performs the initial Refresh. Only the first call has any effect.
func (c *Controller) Init(ctx context.Context) {
	c.initOnce.Do(func() {
		c.Refresh(ctx)
	})
}

// Refresh fetches server info and items concurrently and returns once both
// have settled. The completion notice is shown whether or not either failed.
func (c *Controller) Refresh(ctx context.Context) {
	c.notices.Show(Notice{Message: NoticeRefreshing, Kind: NoticeInfo})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.FetchServerInfo(ctx)
	}()
	go func() {
		defer wg.Done()
		c.FetchItems(ctx)
	}()
	wg.Wait()

	c.notices.Show(Notice{Message: NoticeRefreshed, Kind: NoticeSuccess})
}

func (c *Controller) FetchServerInfo(ctx context.Context) {
	info, err := c.api.FetchInfo(ctx)
	c.observer.ObserveFetch("info", err)
	if err != nil {
		c.logger.Error("error fetching server info", zap.Error(err))
		c.surface.SetStatus(ConnectionStatus{State: StateError, Label: LabelConnectionFailed})
		c.surface.RenderInfo([]InfoField{
			{Label: "Status", Value: MessageUnreachable, Error: true},
		})
		return
	}

	c.surface.SetStatus(ConnectionStatus{State: StateConnected, Label: LabelConnected})
	c.surface.RenderInfo([]InfoField{
		{Label: "Service", Value: info.Service},
		{Label: "Version", Value: info.Version},
		{Label: "Pod Name", Value: info.PodName},
		{Label: "Environment", Value: info.NodeEnv},
	})
}

func (c *Controller) FetchItems(ctx context.Context) {
	list, err := c.api.FetchItems(ctx)
	c.observer.ObserveFetch("items", err)
	if err != nil {
		c.logger.Error("error fetching items", zap.Error(err))
		c.surface.RenderItems([]ItemCard{ErrorCard()})
		return
	}

	cards := make([]ItemCard, 0, len(list.Items))
	for _, item := range list.Items {
		cards = append(cards, ItemCard{
			Icon:        item.Icon,
			Name:        item.Name,
			Description: item.Description,
		})
	}
	c.surface.RenderItems(cards)
}

// CheckHealth calls the health endpoint. It reports through a notice only and
// leaves the connection status untouched.
func (c *Controller) CheckHealth(ctx context.Context) {
	health, err := c.api.CheckHealth(ctx)
	c.observer.ObserveFetch("health", err)
	if err != nil {
		c.logger.Error("health check failed", zap.Error(err))
		c.notices.Show(Notice{Message: NoticeHealthFailed, Kind: NoticeError})
		return
	}

	c.notices.Show(Notice{Message: NoticeHealthyPrefix + health.Timestamp, Kind: NoticeSuccess})
}

// ErrorCard is the single card shown when the items cannot be loaded.
func ErrorCard() ItemCard {
	return ItemCard{
		Icon:        "⚠️",
		Name:        "Error",
		Description: "Failed to load items",
		Error:       true,
	}
}
