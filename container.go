package smrswap

// SwapContainer is the writer-owning top-level object: it composes a Cell
// with a ReclamationEngine and exposes the writer's store/update/swap/get
// operations plus the Local/Factory entry points readers use. It is single-
// owner — SwapContainer itself is not safe for concurrent writer use; wrap
// it in a mutex if more than one goroutine needs to write.
type SwapContainer[T any] struct {
	cell   *cell[T]
	engine *reclamationEngine

	previous        *T
	previousVersion Version

	selfReader *LocalReader[T] // lazily created; backs UpdateAndFetch/FetchAndUpdate
}

// New constructs a SwapContainer holding initial at version 0.
func New[T any](initial T, opts ...Option) *SwapContainer[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SwapContainer[T]{
		cell:   newCell(initial),
		engine: newReclamationEngine(cfg.strategy, cfg.autoCollect),
	}
}

// Local creates a new ReaderSlot, registers it, and returns a LocalReader
// owning it.
func (c *SwapContainer[T]) Local() *LocalReader[T] {
	return newLocalReader(c)
}

// Factory returns a thread-safe ReaderFactory for producing LocalReaders
// from any goroutine.
func (c *SwapContainer[T]) Factory() *ReaderFactory[T] {
	return &ReaderFactory[T]{container: c}
}

// install is the shared core of Store and Swap: publish v into the cell,
// advance the clock, run the strategy's writer barrier, and track the
// displaced value as "previous". It returns the displaced pointer and the
// version the new value is now live at; retiring the displaced pointer is
// the caller's decision (Store always does, Swap only when a reader may
// still hold it).
func (c *SwapContainer[T]) install(v T) (old *T, newVersion Version) {
	old = c.cell.publish(v)
	newVersion = c.engine.clock.advance()
	c.engine.strategy.writerBarrier()

	c.previous = old
	c.previousVersion = newVersion - 1
	return old, newVersion
}

// retireDisplaced queues the value displaced at newVersion for
// reclamation.
func (c *SwapContainer[T]) retireDisplaced(newVersion Version) {
	prevVersion := newVersion - 1
	c.engine.retire(newVersion, func() {
		// Only clear `previous` if no later store has already replaced it;
		// an older retired entry being drained after the fact must not
		// clobber a newer one's bookkeeping.
		if c.previousVersion == prevVersion {
			c.previous = nil
		}
	})
}

// Store publishes new as the current value. The displaced value is
// retired, not returned; see Swap to get it back.
func (c *SwapContainer[T]) Store(v T) {
	_, newVersion := c.install(v)
	c.retireDisplaced(newVersion)
}

// Update reads the current value, applies f to it, and stores the result.
// If f panics, the container is left with the old value still published
// and no new retired entry: f runs before any mutation of the cell or the
// retired queue.
func (c *SwapContainer[T]) Update(f func(T) T) {
	cur := c.cell.load()
	next := f(*cur)
	c.Store(next)
}

// Swap installs new as the current value and returns the value it
// displaced. Unlike Store, the displaced value is handed to the caller
// rather than queued for reclamation: a retired entry is added only when a
// reader pinned at or before the displaced version may still dereference
// the old pointer, so an uncontended Swap never grows GarbageCount. Go's
// garbage collector keeps the returned value valid for the caller (and for
// any pinned ReadGuard) regardless.
func (c *SwapContainer[T]) Swap(v T) T {
	old, newVersion := c.install(v)
	if c.engine.registry.minActive() <= newVersion-1 {
		c.retireDisplaced(newVersion)
	}
	return *old
}

// Get returns a writer-side reference to the current value. No pin is
// required: the writer is exclusive by construction, so nothing can
// reclaim the value out from under this reference while the caller holds
// it synchronously.
func (c *SwapContainer[T]) Get() *T {
	return c.cell.load()
}

// Previous returns the value published immediately before the current one,
// and true, if it is still retained. It returns (nil, false) once that
// generation has been reclaimed. Previous only ever answers for
// Version()-1, never an older generation, even when an older value is
// still retained for a lagging reader.
func (c *SwapContainer[T]) Previous() (*T, bool) {
	if c.previous == nil {
		return nil, false
	}
	return c.previous, true
}

// Version returns the current published version.
func (c *SwapContainer[T]) Version() Version {
	return c.engine.clock.current()
}

// GarbageCount returns the retired-queue depth.
func (c *SwapContainer[T]) GarbageCount() int {
	return c.engine.garbageCount()
}

// Collect manually drains every retired entry that is now safe to destroy.
func (c *SwapContainer[T]) Collect() {
	c.engine.collect()
}

// UpdateAndFetch stores f(current) and returns a ReadGuard pinned to the
// newly-published value.
func (c *SwapContainer[T]) UpdateAndFetch(f func(T) T) *ReadGuard[T] {
	cur := c.cell.load()
	next := f(*cur)
	c.Store(next)
	return c.writerReader().Load()
}

// FetchAndUpdate pins the current value into a ReadGuard the caller can
// inspect, then stores f(pinned value), returning the guard over the
// pre-update value.
func (c *SwapContainer[T]) FetchAndUpdate(f func(T) T) *ReadGuard[T] {
	g := c.writerReader().Load()
	c.Store(f(*g.Value()))
	return g
}

func (c *SwapContainer[T]) writerReader() *LocalReader[T] {
	if c.selfReader == nil {
		c.selfReader = c.Local()
	}
	return c.selfReader
}

// Close tears the container down, draining every retired entry. It panics
// if any ReadGuard obtained from one of its LocalReaders is still
// outstanding: tearing the container down while a guard still dereferences
// into it is a caller bug, and a loud panic here is the closest Go gets to
// rejecting it statically.
func (c *SwapContainer[T]) Close() {
	if c.engine.registry.anyPinned() {
		panic("smrswap: Close called while a ReadGuard is still pinned")
	}
	if c.selfReader != nil {
		c.selfReader.Close()
		c.selfReader = nil
	}
	c.engine.retired.drainSafe(Inactive)
}
