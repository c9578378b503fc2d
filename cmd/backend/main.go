package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"k8s-demo/config"
	"k8s-demo/handler"
	"k8s-demo/repository"
	"k8s-demo/service"
	"k8s-demo/telemetry"
	"k8s-demo/telemetryfs"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	BuildCommit = "undefined"
	BuildTag    = service.Version
	BuildTime   = "undefined"
)

func main() {
	logger, err := telemetryfs.NewLogger()
	if err != nil {
		panic(fmt.Errorf("creating logger: %w", err))
	}

	defer func() {
		_ = logger.Sync()
	}()

	logger = logger.With(
		zap.String("build_commit", BuildCommit),
		zap.String("build_tag", BuildTag),
		zap.String("build_time", BuildTime),
		zap.Int("go_max_procs", runtime.GOMAXPROCS(0)),
		zap.Int("runtime_num_cpu", runtime.NumCPU()),
	)

	cfg, err := config.LoadBackend()
	if err != nil {
		logger.Error("loading configuration", zap.Error(err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = telemetryfs.WithLogger(ctx, logger)

	tracer := telemetryfs.NewNoopTracer(service.ServiceName)
	if cfg.TracingEnabled {
		tracer, err = telemetryfs.NewTracer(ctx, telemetryfs.TracerConfig{
			ServiceName:      service.ServiceName,
			ServiceNamespace: "k8s-demo",
			Endpoint:         cfg.Endpoint,
			Environment:      cfg.Environment,
			SamplingRatio:    cfg.SamplingRatio,
		}, BuildTag)
		if err != nil {
			logger.Error("error creating the tracer", zap.Error(err))
			return
		}
	}

	defer func() {
		if err = tracer.Shutdown(context.Background()); err != nil {
			logger.Error("error flushing tracer", zap.Error(err))
		}
	}()

	ctx = telemetryfs.WithTracer(ctx, tracer.OTelTracer)

	metrics := telemetry.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	telemetry.InitMetricsCollector(ctx, metrics, 5*time.Second)

	itemRepo := repository.NewItemRepository(tracer.OTelTracer, repository.DefaultItems())
	catalogService := service.NewCatalogService(itemRepo, tracer.OTelTracer, metrics)
	catalogHandle := handler.NewCatalogHandle(catalogService, metrics)

	router := handler.NewRouter(logger, tracer.OTelTracer, telemetryfs.NewRedMetricsMiddleware(), catalogHandle)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	servers := []*http.Server{server}
	if cfg.MetricsEnabled {
		servers = append(servers, telemetryfs.NewMetricsServer(telemetryfs.WithAddr(cfg.MetricsAddr)))
	}

	wg := sync.WaitGroup{}
	for _, srv := range servers {
		wg.Add(1)
		go func(srv *http.Server) {
			defer wg.Done()

			logger.Info("server started", zap.String("address", srv.Addr))

			if serverErr := srv.ListenAndServe(); serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
				logger.Error("failed to listen and serve", zap.String("address", srv.Addr), zap.Error(serverErr))
				stop()
			}
		}(srv)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("error shutting down server", zap.String("address", srv.Addr), zap.Error(err))
		}
	}

	wg.Wait()
}
