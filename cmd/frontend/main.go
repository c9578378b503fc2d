package main

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"

	"k8s-demo/client"
	"k8s-demo/config"
	"k8s-demo/renderer"
	"k8s-demo/telemetria"
	"k8s-demo/telemetryfs"
	"k8s-demo/webserver"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const serviceName = "k8s-demo-frontend"

var (
	BuildCommit = "undefined"
	BuildTag    = "1.0.0"
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
	)

	cfg, err := config.LoadFrontend()
	if err != nil {
		logger.Error("loading configuration", zap.Error(err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer := telemetryfs.NewNoopTracer(serviceName)
	if cfg.TracingEnabled {
		tracer, err = telemetryfs.NewTracer(ctx, telemetryfs.TracerConfig{
			ServiceName:      serviceName,
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

	page := renderer.NewPage()
	notices := renderer.NewNotifier(page, cfg.NoticeDuration)
	defer notices.Stop()

	api := client.NewCatalogClient(cfg.APIURL, nil, tracer.OTelTracer)
	controller := renderer.NewController(api, page, notices,
		renderer.WithLogger(logger),
		renderer.WithObserver(telemetria.NewFetchMetrics(prometheus.DefaultRegisterer)),
	)

	server := webserver.New(controller, page, logger, tracer.OTelTracer, prometheus.DefaultGatherer)

	addr, err := server.Start(ctx, cfg.Addr)
	if err != nil {
		logger.Error("failed to listen", zap.String("address", cfg.Addr), zap.Error(err))
		return
	}
	logger.Info("frontend started", zap.String("address", addr.String()), zap.String("api_url", cfg.APIURL))

	go renderer.Poller{Controller: controller, Interval: cfg.PollInterval}.Run(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	if err := server.Shutdown(context.Background(), cfg.ShutdownTimeout); err != nil {
		logger.Error("error shutting down server", zap.Error(err))
	}
}
