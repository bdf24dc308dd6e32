package smrswap

import "testing"

func TestEngineSafeFrontierNoReaders(t *testing.T) {
	e := newReclamationEngine(WritePreferred, AutoCollectThreshold(64))
	if got := e.safeFrontier(); got != Inactive {
		t.Fatalf("expected Inactive frontier with no readers, got %d", got)
	}
}

func TestEngineSafeFrontierReaderAtZero(t *testing.T) {
	e := newReclamationEngine(WritePreferred, AutoCollectThreshold(64))
	s := newReaderSlot()
	e.registry.register(s)
	s.pin(WritePreferred, 0)

	if got := e.safeFrontier(); got != 0 {
		t.Fatalf("expected frontier 0 (not wraparound) for a reader pinned at 0, got %d", got)
	}
}

func TestEngineSafeFrontierIsMinActiveMinusOne(t *testing.T) {
	e := newReclamationEngine(WritePreferred, AutoCollectThreshold(64))
	s := newReaderSlot()
	e.registry.register(s)
	s.pin(WritePreferred, 7)

	if got := e.safeFrontier(); got != 6 {
		t.Fatalf("expected frontier 6, got %d", got)
	}
}

func TestEngineCollectDrainsUpToFrontier(t *testing.T) {
	e := newReclamationEngine(WritePreferred, AutoCollectDisabled)
	s := newReaderSlot()
	e.registry.register(s)
	s.pin(WritePreferred, 5)

	destroyed := 0
	e.retire(3, func() { destroyed++ })
	e.retire(5, func() { destroyed++ })
	e.retire(6, func() { destroyed++ })

	e.collect()
	if destroyed != 2 {
		t.Fatalf("expected entries at or below 4 destroyed (2 of them), got %d", destroyed)
	}
	if e.garbageCount() != 1 {
		t.Fatalf("expected 1 entry remaining, got %d", e.garbageCount())
	}

	s.unpin()
	e.collect()
	if e.garbageCount() != 0 {
		t.Fatalf("expected 0 entries remaining after unpin+collect, got %d", e.garbageCount())
	}
}

func TestEngineAutoCollectEveryWrite(t *testing.T) {
	e := newReclamationEngine(WritePreferred, AutoCollectEveryWrite)
	for i := Version(1); i <= 10; i++ {
		e.retire(i, func() {})
	}
	if got := e.garbageCount(); got != 0 {
		t.Fatalf("AutoCollectEveryWrite should leave nothing behind with no readers, got %d", got)
	}
}

func TestEngineAutoCollectThreshold(t *testing.T) {
	e := newReclamationEngine(WritePreferred, AutoCollectThreshold(3))
	// No active readers, so the moment auto-collect fires, everything
	// retired so far drains.
	for i := Version(1); i <= 3; i++ {
		e.retire(i, func() {})
	}
	if got := e.garbageCount(); got != 3 {
		t.Fatalf("expected no auto-collect at exactly the threshold, garbageCount=%d", got)
	}
	e.retire(4, func() {})
	if got := e.garbageCount(); got != 0 {
		t.Fatalf("expected auto-collect once depth exceeds the threshold, garbageCount=%d", got)
	}
}
