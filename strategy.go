package smrswap

import (
	"sync/atomic"

	"smrswap/internal/membarrier"
)

// Strategy selects which side of the reader/writer pair pays for memory
// synchronization. Both strategies give the same safety guarantee; they
// differ only in where the constant-factor cost lands.
//
// Go's sync/atomic package does not expose a relaxed/acquire/release/
// seq-cst ordering spectrum per operation; every atomic.Uint64 load and
// store already carries the synchronization edges the Go memory model
// requires of it. The observable distinction between the two strategies is
// therefore the one genuinely platform-visible choice: whether the writer
// issues a process-wide broadcast barrier after publishing.
type Strategy uint8

const (
	// WritePreferred shares the synchronization cost between reader and
	// writer: every pin is a full atomic store/load pair and the writer
	// never broadcasts. This is the default, and the right choice unless
	// the workload is read-dominated (>99% reads).
	WritePreferred Strategy = iota
	// ReadPreferred shifts the cost to the writer: after publishing, the
	// writer issues a broadcast barrier (internal/membarrier) so that
	// readers need only a relaxed-equivalent store and an acquire load on
	// the hot path.
	ReadPreferred
)

func (s Strategy) String() string {
	switch s {
	case ReadPreferred:
		return "read-preferred"
	case WritePreferred:
		return "write-preferred"
	default:
		return "unknown"
	}
}

// pinStore publishes observed into the reader's active-version slot. Both
// strategies use a plain atomic store: there is no portable way in Go to
// ask for anything weaker, and a plain store already keeps read-preferred
// readers barrier-free, since the cost asymmetry lives entirely in the
// writer-side broadcast.
func (s Strategy) pinStore(slot *atomic.Uint64, observed Version) {
	slot.Store(observed)
}

// writerBarrier runs the writer-side synchronization step for this
// strategy immediately after a Cell publish and VersionClock advance.
// WritePreferred does nothing here — its cost was already paid by the
// reader's full fence on pin. ReadPreferred issues the broadcast barrier.
func (s Strategy) writerBarrier() {
	if s == ReadPreferred {
		membarrier.Broadcast()
	}
}
