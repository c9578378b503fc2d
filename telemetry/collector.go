package telemetry

import (
	"context"
	"runtime"
	"time"
)

// InitMetricsCollector samples process and host memory every interval until
// ctx is done.
func InitMetricsCollector(ctx context.Context, metrics Prometheus, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			collectMemory(metrics)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func collectMemory(metrics Prometheus) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.MemoryAllocGauge.Set(float64(m.Alloc))
	metrics.MemorySysGauge.Set(float64(m.Sys))

	if free, err := GetFreeMemory(); err == nil {
		metrics.HostFreeMemoryGauge.Set(free)
	}
}
