package stm

import "sync/atomic"

// clock is the sole source of version numbers for a Region. Every unlocked
// lock word's timestamp and every transaction's start/end snapshot bound are
// values that were, at some point, read from a clock.
type clock struct {
	v atomic.Uint64
}

// sample returns the current clock value without advancing it. Used when
// beginning a transaction and when extending a snapshot.
func (c *clock) sample() uint64 {
	return c.v.Load()
}

// fetchIncrement atomically advances the clock by one and returns the new
// value. Used exactly once per committing write transaction, to produce its
// commit timestamp. Add carries the sequentially-consistent ordering the
// WBCTL commit protocol needs: commit timestamps must be totally ordered
// against each other and against concurrent lock-word updates.
func (c *clock) fetchIncrement() uint64 {
	return c.v.Add(1)
}
