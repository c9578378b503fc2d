package renderer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"k8s-demo/client"
	"k8s-demo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type fakeAPI struct {
	info      models.ServerInfo
	infoErr   error
	items     models.ItemList
	itemsErr  error
	health    models.HealthStatus
	healthErr error

	infoCalls  atomic.Int32
	itemsCalls atomic.Int32

	// barrier, when set, makes each fetch wait until the other has started.
	barrier *sync.WaitGroup
}

func (f *fakeAPI) wait() error {
	if f.barrier == nil {
		return nil
	}
	f.barrier.Done()

	done := make(chan struct{})
	go func() {
		f.barrier.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(time.Second):
		return errors.New("fetches did not overlap")
	}
}

func (f *fakeAPI) FetchInfo(ctx context.Context) (models.ServerInfo, error) {
	f.infoCalls.Add(1)
	if err := f.wait(); err != nil {
		return models.ServerInfo{}, err
	}
	return f.info, f.infoErr
}

func (f *fakeAPI) FetchItems(ctx context.Context) (models.ItemList, error) {
	f.itemsCalls.Add(1)
	if err := f.wait(); err != nil {
		return models.ItemList{}, err
	}
	return f.items, f.itemsErr
}

func (f *fakeAPI) CheckHealth(ctx context.Context) (models.HealthStatus, error) {
	return f.health, f.healthErr
}

type recordingObserver struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *recordingObserver) ObserveFetch(endpoint string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[endpoint]++
}

func okAPI() *fakeAPI {
	return &fakeAPI{
		info: models.ServerInfo{
			Service:  "k8s-demo-backend",
			Version:  "1.0.0",
			Hostname: "unknown",
			PodName:  "local",
			NodeEnv:  "development",
		},
		items: models.ItemList{
			Items: []models.Item{
				{ID: 1, Name: "Kubernetes", Description: "Container orchestration platform", Icon: "☸️"},
				{ID: 2, Name: "Docker", Description: "Containerization technology", Icon: "🐳"},
			},
			Count: 2,
		},
		health: models.HealthStatus{Status: "healthy", Timestamp: "2024-05-01T11:30:45.123Z"},
	}
}

func newTestController(api CatalogAPI, opts ...ControllerOption) (*Controller, *Page) {
	page := NewPage()
	notices := NewNotifier(page, time.Minute)
	return NewController(api, page, notices, opts...), page
}

func TestRefreshRendersBothPanels(t *testing.T) {
	observer := &recordingObserver{}
	c, page := newTestController(okAPI(), WithObserver(observer))

	c.Refresh(context.Background())

	view := page.Snapshot()
	assert.Equal(t, ConnectionStatus{State: StateConnected, Label: "Connected"}, view.Status)
	assert.Equal(t, []InfoField{
		{Label: "Service", Value: "k8s-demo-backend"},
		{Label: "Version", Value: "1.0.0"},
		{Label: "Pod Name", Value: "local"},
		{Label: "Environment", Value: "development"},
	}, view.Info)

	require.Len(t, view.Items, 2)
	assert.Equal(t, ItemCard{Icon: "☸️", Name: "Kubernetes", Description: "Container orchestration platform"}, view.Items[0])
	assert.Equal(t, "Docker", view.Items[1].Name)

	require.NotNil(t, view.Notice)
	assert.Equal(t, Notice{Message: "Data refreshed!", Kind: NoticeSuccess}, *view.Notice)

	assert.Equal(t, 1, observer.calls["info"])
	assert.Equal(t, 1, observer.calls["items"])
}

func TestRefreshRunsFetchesConcurrently(t *testing.T) {
	api := okAPI()
	api.barrier = &sync.WaitGroup{}
	api.barrier.Add(2)

	c, page := newTestController(api)
	c.Refresh(context.Background())

	view := page.Snapshot()
	assert.Equal(t, StateConnected, view.Status.State)
	assert.Len(t, view.Items, 2)
}

func TestRefreshFailuresAreIndependent(t *testing.T) {
	api := okAPI()
	api.infoErr = client.ErrUnreachable

	c, page := newTestController(api)
	c.Refresh(context.Background())

	view := page.Snapshot()
	assert.Equal(t, StateError, view.Status.State)
	assert.Equal(t, []InfoField{{Label: "Status", Value: "Unable to connect to backend", Error: true}}, view.Info)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, "Data refreshed!", view.Notice.Message)
}

func TestRefreshAgainstUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	api := client.NewCatalogClient(url, nil, noop.NewTracerProvider().Tracer("test"))
	c, page := newTestController(api)

	assert.NotPanics(t, func() { c.Refresh(context.Background()) })

	view := page.Snapshot()
	assert.Equal(t, ConnectionStatus{State: StateError, Label: "Connection Failed"}, view.Status)
	require.Len(t, view.Info, 1)
	assert.Equal(t, "Unable to connect to backend", view.Info[0].Value)
	assert.Equal(t, []ItemCard{ErrorCard()}, view.Items)
	assert.Equal(t, "Data refreshed!", view.Notice.Message)

	// Later interaction still works.
	c.CheckHealth(context.Background())
	assert.Equal(t, Notice{Message: "✗ Backend health check failed", Kind: NoticeError}, *page.Snapshot().Notice)
}

func TestRefreshAgainstErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := client.NewCatalogClient(srv.URL, nil, noop.NewTracerProvider().Tracer("test"))
	c, page := newTestController(api)
	c.Refresh(context.Background())

	view := page.Snapshot()
	assert.Equal(t, StateError, view.Status.State)
	assert.Equal(t, []ItemCard{ErrorCard()}, view.Items)
}

func TestCheckHealthDoesNotTouchStatus(t *testing.T) {
	c, page := newTestController(okAPI())

	c.CheckHealth(context.Background())

	view := page.Snapshot()
	assert.Equal(t, StateUnknown, view.Status.State)
	assert.Equal(t, Notice{Message: "✓ Backend healthy: 2024-05-01T11:30:45.123Z", Kind: NoticeSuccess}, *view.Notice)

	api := okAPI()
	api.healthErr = client.ErrUnreachable
	c, page = newTestController(api)
	c.Refresh(context.Background())
	c.CheckHealth(context.Background())

	view = page.Snapshot()
	assert.Equal(t, StateConnected, view.Status.State)
	assert.Equal(t, "✗ Backend health check failed", view.Notice.Message)
}

func TestInitRefreshesExactlyOnce(t *testing.T) {
	api := okAPI()
	c, _ := newTestController(api)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Init(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), api.infoCalls.Load())
	assert.Equal(t, int32(1), api.itemsCalls.Load())
}

func TestFetchItemsPreservesOrder(t *testing.T) {
	api := okAPI()
	api.items = models.ItemList{Items: []models.Item{
		{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"},
	}, Count: 3}
	c, page := newTestController(api)

	c.FetchItems(context.Background())

	var names []string
	for _, card := range page.Snapshot().Items {
		names = append(names, card.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
