//go:build !linux && !darwin && !windows

package main

// totalSystemMemory is unknown on this platform
func totalSystemMemory() (uint64, error) {
	return 0, nil
}
