package webserver

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"k8s-demo/renderer"
	"k8s-demo/telemetria"
	"k8s-demo/telemetryfs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Server exposes the rendered page and binds the page's controls to the
// controller.
type Server struct {
	echo       *echo.Echo
	controller *renderer.Controller
	page       *renderer.Page
	logger     *zap.Logger
}

func New(controller *renderer.Controller, page *renderer.Page, logger *zap.Logger, tracer trace.Tracer, gatherer prometheus.Gatherer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		middleware.Recover(),
		telemetria.LoggerToContextMiddleware(logger),
		telemetria.TracerToContextMiddleware(tracer),
	)

	s := &Server{
		echo:       e,
		controller: controller,
		page:       page,
		logger:     logger,
	}

	e.GET("/", s.Index)
	e.GET("/api/view", s.View)
	e.POST("/refresh", s.Refresh)
	e.POST("/health-check", s.CheckHealth)
	e.GET("/healthz", Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Index renders the page.
func (s *Server) Index(c echo.Context) error {
	var buf bytes.Buffer
	if err := s.page.Render(&buf); err != nil {
		telemetryfs.HandleUnexpectedError(c.Request().Context(), err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// View returns the page state as JSON.
func (s *Server) View(c echo.Context) error {
	return c.JSON(http.StatusOK, s.page.Snapshot())
}

func (s *Server) Refresh(c echo.Context) error {
	s.controller.Refresh(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) CheckHealth(c echo.Context) error {
	s.controller.CheckHealth(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/")
}

func Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Start listens on addr, serves in the background and, once the listener is
// ready, runs the controller's initial refresh.
func (s *Server) Start(ctx context.Context, addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s.echo.Listener = ln

	go func() {
		if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("failed to serve frontend", zap.Error(err))
		}
	}()

	go s.controller.Init(telemetryfs.WithLogger(ctx, s.logger))

	return ln.Addr(), nil
}

func (s *Server) Shutdown(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
