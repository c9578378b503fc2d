package telemetry

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// GetFreeMemory returns free plus buffer memory of the host in bytes.
func GetFreeMemory() (float64, error) {
	var stat unix.Sysinfo_t

	if err := unix.Sysinfo(&stat); err != nil {
		return 0, fmt.Errorf("reading sysinfo: %w", err)
	}

	freeMemory := float64(stat.Freeram) * float64(stat.Unit)
	bufferMemory := float64(stat.Bufferram) * float64(stat.Unit)

	return freeMemory + bufferMemory, nil
}
