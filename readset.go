package stm

// ReadEntry records one transactional load: the stripe lock consulted and
// the version observed on it at read time. "version <= tx.end" must hold
// for every entry in a transaction's read set at all times.
type ReadEntry struct {
	lock    *lockCell
	version uint64
}

// readSet is a transaction's ordered buffer of ReadEntry. It is a plain Go
// slice whose capacity is kept across retries of the same Txn (Begin calls
// reset); the core never pools or recycles it beyond that.
type readSet struct {
	entries []ReadEntry
}

func (rs *readSet) append(lock *lockCell, version uint64) {
	rs.entries = append(rs.entries, ReadEntry{lock: lock, version: version})
}

func (rs *readSet) reset() {
	rs.entries = rs.entries[:0]
}

// find returns the read-set entry for lock, or nil if this transaction has
// not previously read anything on that stripe. Linear scan: read sets are
// expected to be small relative to a transaction's working set, so a faster
// membership test isn't worth the extra bookkeeping here the way it is for
// the write set, which gets a Bloom-filter accelerator.
func (rs *readSet) find(lock *lockCell) *ReadEntry {
	for i := range rs.entries {
		if rs.entries[i].lock == lock {
			return &rs.entries[i]
		}
	}
	return nil
}
