package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuntimeDefaults(t *testing.T) {
	rt := ParseRuntime(map[string]string{})

	assert.Equal(t, "unknown", rt.Hostname)
	assert.Equal(t, "local", rt.PodName)
	assert.Equal(t, "development", rt.NodeEnv)
}

func TestParseRuntimeOverrides(t *testing.T) {
	rt := ParseRuntime(map[string]string{
		"HOSTNAME": "node-a",
		"POD_NAME": "backend-7c9f",
		"NODE_ENV": "production",
	})

	assert.Equal(t, "node-a", rt.Hostname)
	assert.Equal(t, "backend-7c9f", rt.PodName)
	assert.Equal(t, "production", rt.NodeEnv)
}

func TestParseRuntimeEmptyCountsAsUnset(t *testing.T) {
	rt := ParseRuntime(map[string]string{"POD_NAME": ""})
	assert.Equal(t, "local", rt.PodName)
}

func TestLoadBackend(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadBackend()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "0.0.0.0:4000", cfg.Addr())
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, ":9191", cfg.MetricsAddr)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadBackendRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := LoadBackend()
	assert.Error(t, err)
}

func TestLoadFrontendDefaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("POLL_INTERVAL", "")

	cfg, err := LoadFrontend()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.NoticeDuration)
	assert.Zero(t, cfg.PollInterval)
}

func TestEnviron(t *testing.T) {
	t.Setenv("NODE_ENV", "a=b")

	assert.Equal(t, "a=b", Environ()["NODE_ENV"])
	assert.Equal(t, "a=b", ParseRuntime(Environ()).NodeEnv)
}
