package smrswap

// noCopy trips `go vet -copylocks` when a handle that must stay unique is
// copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// LocalReader is a per-goroutine read handle: it owns one readerSlot and
// provides Load, which returns a ReadGuard pinned to the version observed
// at the moment of the outermost Load call. It is not safe to share a
// LocalReader across goroutines — Clone it instead, which registers an
// independent slot rather than handing out a second handle to the same one.
type LocalReader[T any] struct {
	noCopy noCopy

	container *SwapContainer[T]
	slot      *readerSlot
	pinned    *T // value anchored by the outermost pin; nil while unpinned
}

func newLocalReader[T any](c *SwapContainer[T]) *LocalReader[T] {
	s := newReaderSlot()
	c.engine.registry.register(s)
	return &LocalReader[T]{container: c, slot: s}
}

// Load pins this reader's slot at the current version and returns a guard
// over the value currently published.
//
// Nested calls from the same LocalReader (without an intervening Close of
// the outermost guard) are cheap: only the outermost pin touches the clock
// and the Cell; everything after just bumps a reference count.
func (r *LocalReader[T]) Load() *ReadGuard[T] {
	if r.slot.pinDepth > 0 {
		r.slot.pinDepth++
		return &ReadGuard[T]{reader: r, value: r.pinned, version: r.slot.read()}
	}

	observed := r.container.engine.clock.current()
	r.slot.pin(r.container.engine.strategy, observed)
	// Re-load after publishing the pin: a writer that advances past
	// `observed` and retires is guaranteed to either see this pin (and so
	// not reclaim anything at or above it) or to have completed its publish
	// before this load, in which case we simply observe the newer value.
	// Either way is safe.
	ptr := r.container.cell.load()
	r.slot.pinDepth = 1
	r.pinned = ptr
	return &ReadGuard[T]{reader: r, value: ptr, version: observed}
}

// IsPinned reports whether this reader currently holds an outstanding pin.
func (r *LocalReader[T]) IsPinned() bool {
	return r.slot.pinDepth > 0
}

// Version reports the version this reader is currently pinned at, or
// Inactive if it is not pinned.
func (r *LocalReader[T]) Version() Version {
	return r.slot.read()
}

// Clone creates a new, independently-registered LocalReader against the
// same SwapContainer. It is not a shared reference to this reader's slot.
func (r *LocalReader[T]) Clone() *LocalReader[T] {
	return newLocalReader(r.container)
}

// Close tombstones this reader's slot; the registry drops it on the
// writer's next scan. It panics if a ReadGuard obtained from this reader is
// still outstanding.
func (r *LocalReader[T]) Close() {
	if r.slot.pinDepth > 0 {
		panic("smrswap: LocalReader.Close called with an outstanding ReadGuard")
	}
	r.slot.tombstone()
}

// ReadGuard anchors a LocalReader's slot at a specific version for the
// guard's lifetime, dereferencing to the value observed at pin time (or
// later, per the pin protocol's race-but-safe re-load).
type ReadGuard[T any] struct {
	noCopy noCopy

	reader  *LocalReader[T]
	value   *T
	version Version
	closed  bool
}

// Value returns the pinned value. The reference is valid until Close.
func (g *ReadGuard[T]) Value() *T {
	return g.value
}

// Version reports the version this guard pinned.
func (g *ReadGuard[T]) Version() Version {
	return g.version
}

// Clone increments the owning reader's pin depth and returns an
// independent guard over the same value and version; each returned guard
// (the original and every clone) must be Closed exactly once.
func (g *ReadGuard[T]) Clone() *ReadGuard[T] {
	g.reader.slot.pinDepth++
	return &ReadGuard[T]{reader: g.reader, value: g.value, version: g.version}
}

// Close releases this guard's pin. Once the outermost guard on a
// LocalReader is closed, the reader's slot publishes Inactive, allowing the
// writer to reclaim the entries retired at or after the pinned version that
// this pin was holding back.
func (g *ReadGuard[T]) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.reader.slot.pinDepth--
	if g.reader.slot.pinDepth == 0 {
		g.reader.slot.unpin()
		g.reader.pinned = nil
	}
}
