package smrswap

import "sync/atomic"

// cell holds the single pointer to the currently-published value.
// publish and load are the only two operations the writer and readers
// respectively ever perform against it.
type cell[T any] struct {
	current atomic.Pointer[T]
}

func newCell[T any](initial T) *cell[T] {
	c := &cell[T]{}
	v := initial
	c.current.Store(&v)
	return c
}

// publish installs v as the current value and returns the displaced
// pointer. atomic.Pointer.Swap is a single atomic exchange, so there is
// no separate load-then-store step that could race with a concurrent
// reader's load.
func (c *cell[T]) publish(v T) *T {
	nv := new(T)
	*nv = v
	return c.current.Swap(nv)
}

// load acquire-reads the current pointer. Readers never call publish.
func (c *cell[T]) load() *T {
	return c.current.Load()
}
