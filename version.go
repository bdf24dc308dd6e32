package smrswap

import "sync/atomic"

// Version identifies a published snapshot. It is monotonically increasing
// and never reused; version 0 is the value passed to New.
type Version = uint64

// Inactive is the sentinel active_version value for a ReaderSlot that is not
// currently pinned. It is the maximum representable Version, so that any
// real (pinned) version compares less than it — this is what lets
// minActive treat an inactive slot as "not a constraint" with a single
// comparison instead of a branch on a separate boolean.
const Inactive Version = ^Version(0)

// versionClock is the monotonic counter of published versions.
// There is exactly one per SwapContainer; only the writer calls advance.
type versionClock struct {
	v atomic.Uint64
}

// current reads the counter. The value may be stale by the time it is
// used by the caller, which is fine: the pin protocol re-reads the Cell
// after publishing the observed version (see LocalReader.Load).
func (c *versionClock) current() Version {
	return c.v.Load()
}

// advance publishes a new version and returns it. Callers always want
// "the version the value I just installed is now live at", not the version
// that preceded it, so this returns the post-increment value.
func (c *versionClock) advance() Version {
	return c.v.Add(1)
}
