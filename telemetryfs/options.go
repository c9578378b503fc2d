package telemetryfs

import "github.com/prometheus/client_golang/prometheus"

type options struct {
	register prometheus.Registerer
	gatherer prometheus.Gatherer
	addr     string
}

func defaultOptions() options {
	return options{
		register: prometheus.DefaultRegisterer,
		gatherer: prometheus.DefaultGatherer,
		addr:     ":9191",
	}
}

type Option func(*options)

func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.register = r
	}
}

func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) {
		o.gatherer = g
	}
}

// WithAddr sets the listen address of the metrics server.
func WithAddr(addr string) Option {
	return func(o *options) {
		o.addr = addr
	}
}
