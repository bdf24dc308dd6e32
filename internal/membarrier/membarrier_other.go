//go:build !linux

package membarrier

// Broadcast falls back to the mutex-sweep barrier on platforms without a
// kernel-level broadcast primitive wired up.
func Broadcast() {
	sweepFallback()
}
