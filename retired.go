package smrswap

// retiredEntry pairs a retired value's version with the closure that frees
// it. destroy is invoked at most once, by drainSafe.
type retiredEntry struct {
	version Version
	destroy func()
}

// retiredQueue is a FIFO of retiredEntries ordered by retirement version,
// which is equivalent to enqueue order since there is only ever one writer.
// Writer-only, so no synchronization. Depth is unbounded (a pinned reader
// may hold back reclamation indefinitely); front drains are amortized O(1)
// via periodic compaction of the dead prefix.
type retiredQueue struct {
	entries []retiredEntry
	head    int
}

// push appends a newly retired entry. Caller (ReclamationEngine.retire)
// guarantees non-decreasing version order.
func (q *retiredQueue) push(e retiredEntry) {
	q.entries = append(q.entries, e)
}

// drainSafe destroys every entry whose version is <= frontier, in enqueue
// order, and reports how many were destroyed. Passing Inactive as frontier
// drains the whole queue, since every real Version compares <= Inactive.
func (q *retiredQueue) drainSafe(frontier Version) int {
	n := 0
	for q.head < len(q.entries) && q.entries[q.head].version <= frontier {
		e := q.entries[q.head]
		q.entries[q.head] = retiredEntry{} // drop the reference before destroy runs
		q.head++
		e.destroy()
		n++
	}
	q.compact()
	return n
}

// compact reclaims the dead prefix of entries once it dominates the live
// suffix, keeping the backing array from growing without bound across a
// long-running container's lifetime while keeping drains amortized O(1).
func (q *retiredQueue) compact() {
	if q.head == len(q.entries) {
		q.entries = q.entries[:0]
		q.head = 0
		return
	}
	if q.head > 64 && q.head*2 > len(q.entries) {
		q.entries = append(q.entries[:0], q.entries[q.head:]...)
		q.head = 0
	}
}

// len reports the current retired-queue depth.
func (q *retiredQueue) len() int {
	return len(q.entries) - q.head
}
