package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultPort     = 3001
	DefaultAPIURL   = "http://localhost:3001"
	DefaultHostname = "unknown"
	DefaultPodName  = "local"
	DefaultNodeEnv  = "development"
)

// Backend configures the catalog service process.
type Backend struct {
	Port            int           `env:"PORT"                   envDefault:"3001"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED"        envDefault:"true"`
	MetricsAddr     string        `env:"METRICS_ADDR"           envDefault:":9191"`
	TracingEnabled  bool          `env:"TRACING_ENABLED"        envDefault:"false"`
	Endpoint        string        `env:"COLLECTOR_ENDPOINT"     envDefault:"0.0.0.0:4317"`
	SamplingRatio   float64       `env:"SAMPLING_RATIO"         envDefault:"1.0"`
	Environment     string        `env:"DEPLOYMENT_ENVIRONMENT" envDefault:"development"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"       envDefault:"5s"`
}

// Addr is the listen address on all interfaces.
func (b Backend) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", b.Port)
}

// Frontend configures the renderer process.
type Frontend struct {
	APIURL          string        `env:"API_URL"          envDefault:"http://localhost:3001"`
	Addr            string        `env:"FRONTEND_ADDR"    envDefault:":8080"`
	NoticeDuration  time.Duration `env:"NOTICE_DURATION"  envDefault:"3s"`
	PollInterval    time.Duration `env:"POLL_INTERVAL"    envDefault:"0s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	TracingEnabled bool    `env:"TRACING_ENABLED"        envDefault:"false"`
	Endpoint       string  `env:"COLLECTOR_ENDPOINT"     envDefault:"0.0.0.0:4317"`
	SamplingRatio  float64 `env:"SAMPLING_RATIO"         envDefault:"1.0"`
	Environment    string  `env:"DEPLOYMENT_ENVIRONMENT" envDefault:"development"`
}

// Runtime holds the informational values reported by /api/info.
type Runtime struct {
	Hostname string `env:"HOSTNAME"`
	PodName  string `env:"POD_NAME"`
	NodeEnv  string `env:"NODE_ENV"`
}

// LoadBackend parses the backend configuration from the process environment.
func LoadBackend() (Backend, error) {
	var cfg Backend
	if err := env.Parse(&cfg); err != nil {
		return Backend{}, fmt.Errorf("parse backend env: %w", err)
	}
	if cfg.Port <= 0 {
		cfg.Port = DefaultPort
	}
	return cfg, nil
}

// LoadFrontend parses the frontend configuration from the process environment.
func LoadFrontend() (Frontend, error) {
	var cfg Frontend
	if err := env.Parse(&cfg); err != nil {
		return Frontend{}, fmt.Errorf("parse frontend env: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.NoticeDuration <= 0 {
		cfg.NoticeDuration = 3 * time.Second
	}
	return cfg, nil
}

// Environ returns the current process environment as a map.
func Environ() map[string]string {
	return env.ToMap(os.Environ())
}

// ParseRuntime reads the informational values from environ. Unset and empty
// values fall back to their defaults.
func ParseRuntime(environ map[string]string) Runtime {
	var rt Runtime
	// Plain string fields cannot fail to parse.
	_ = env.ParseWithOptions(&rt, env.Options{Environment: environ})
	if rt.Hostname == "" {
		rt.Hostname = DefaultHostname
	}
	if rt.PodName == "" {
		rt.PodName = DefaultPodName
	}
	if rt.NodeEnv == "" {
		rt.NodeEnv = DefaultNodeEnv
	}
	return rt
}
