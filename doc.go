// Package smrswap provides a concurrent container holding a single mutable
// value of arbitrary type T: one writer publishes new values, many readers
// observe them with no torn reads and no blocking, backed by a
// version-based safe memory reclamation (SMR) engine instead of reference
// counting.
//
// A container is created with New, which returns both the writer-owned
// SwapContainer and lets any number of goroutines obtain their own
// LocalReader via Local or a shared ReaderFactory. Readers call Load to pin
// a ReadGuard over the value currently published; the guard must be
// released (via Close) before the pinned version can be reclaimed.
//
//	c := smrswap.New(config{Replicas: 3})
//	r := c.Local()
//	defer r.Close()
//
//	g := r.Load()
//	use(g.Value())
//	g.Close()
//
//	c.Store(config{Replicas: 5})
//
// The writer side is exclusive by construction: SwapContainer is not safe
// to use from more than one goroutine without external serialization (e.g.
// a mutex around the writer). Readers, by contrast, scale to any number of
// goroutines and never block on the writer.
//
// Two publication strategies trade where the memory-barrier cost is paid;
// see Strategy, WritePreferred and ReadPreferred.
package smrswap
