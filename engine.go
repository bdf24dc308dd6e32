package smrswap

import "log/slog"

// reclamationEngine composes the version clock, the reader registry and
// the retired queue. Every SwapContainer owns exactly one.
type reclamationEngine struct {
	clock       versionClock
	registry    readerRegistry
	retired     retiredQueue
	strategy    Strategy
	autoCollect AutoCollect
}

func newReclamationEngine(strategy Strategy, autoCollect AutoCollect) *reclamationEngine {
	return &reclamationEngine{strategy: strategy, autoCollect: autoCollect}
}

// retire enqueues a newly-displaced value, tagged with the version it was
// displaced at, and applies the configured auto-collect policy.
func (e *reclamationEngine) retire(version Version, destroy func()) {
	e.retired.push(retiredEntry{version: version, destroy: destroy})

	switch e.autoCollect.kind {
	case autoCollectEveryWrite:
		e.collect()
	case autoCollectThreshold:
		n := e.autoCollect.n
		if n == 0 { // zero-value AutoCollect
			n = defaultAutoCollectThreshold
		}
		if e.retired.len() > n {
			e.collect()
		}
	}
}

// safeFrontier computes the highest version at which all retired entries
// can be destroyed without risk of use-after-free.
//
// minActive-1 would underflow (wrapping to Inactive, the all-clear
// sentinel — exactly the wrong answer) when minActive is 0, which happens
// whenever a reader is pinned before the writer has ever advanced the
// clock. Since no retired entry is ever tagged with version 0 (advance
// always returns a version >= 1 the first time it is called), frontier 0 is
// the correct "nothing is safe yet" answer for that case, so it is handled
// explicitly rather than left to wrap.
func (e *reclamationEngine) safeFrontier() Version {
	min := e.registry.minActive()
	switch {
	case min == Inactive:
		return Inactive
	case min == 0:
		return 0
	default:
		return min - 1
	}
}

// collect drains every retired entry that is now safe to destroy.
func (e *reclamationEngine) collect() {
	n := e.retired.drainSafe(e.safeFrontier())
	if n > 0 {
		slog.Debug("smrswap: collected retired entries", "count", n)
	}
}

func (e *reclamationEngine) garbageCount() int {
	return e.retired.len()
}
