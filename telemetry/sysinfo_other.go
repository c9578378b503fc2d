//go:build !linux

package telemetry

import "errors"

// GetFreeMemory is only implemented on linux.
func GetFreeMemory() (float64, error) {
	return 0, errors.New("free memory is not available on this platform")
}
