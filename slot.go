package smrswap

import (
	"sync"
	"sync/atomic"

	"smrswap/internal/membarrier"
)

// readerSlot is the per-reader cell the writer scans to compute the safe
// reclamation frontier. It is owned strongly by exactly one LocalReader and
// referenced weakly by the readerRegistry; Go has no weak pointers usable
// across goroutines, so the registry instead holds the slot directly and
// relies on the tombstoned flag (set by LocalReader.Close) to know the slot
// is dead and may be swept.
type readerSlot struct {
	activeVersion atomic.Uint64 // Inactive when not pinned
	tombstoned    atomic.Bool   // true once the owning LocalReader is closed
	pinDepth      int           // owner-goroutine-private; never touched by the writer

	// barrierMu backs the read-preferred strategy's fallback broadcast
	// barrier (internal/membarrier): sweeping every live slot's lock once
	// forces a full fence on any thread that might be mid-pin. Unused, and
	// never contended, under write-preferred.
	barrierMu sync.Mutex
}

func newReaderSlot() *readerSlot {
	s := &readerSlot{}
	s.activeVersion.Store(Inactive)
	membarrier.Register(&s.barrierMu)
	return s
}

// pin publishes observed into active_version through Strategy.pinStore,
// which uses the same plain atomic store under both strategies; this
// method only exists so callers don't need to reach into the slot's atomic
// field directly.
func (s *readerSlot) pin(strat Strategy, observed Version) {
	strat.pinStore(&s.activeVersion, observed)
}

// unpin releases the pin, publishing Inactive with release ordering. A
// release store is sufficient here under both strategies: unpinning never
// needs to be visible to the writer any faster than a plain atomic store
// guarantees, since a writer that misses a just-unpinned slot merely defers
// reclamation by one collect cycle.
func (s *readerSlot) unpin() {
	s.activeVersion.Store(Inactive)
}

// read acquire-loads the slot's active version; used only by the writer
// during safe-frontier computation.
func (s *readerSlot) read() Version {
	return s.activeVersion.Load()
}

func (s *readerSlot) isTombstoned() bool {
	return s.tombstoned.Load()
}

func (s *readerSlot) tombstone() {
	s.tombstoned.Store(true)
	membarrier.Unregister(&s.barrierMu)
}
