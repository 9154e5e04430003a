package stm

// WriteEntry records one buffered write. mask indicates which bits of the
// word the transaction wants to modify (all-ones for a whole-word write).
// noDrop is true when a later entry in the same write set covers the same
// stripe and will perform the lock release on commit or rollback instead of
// this one; among all entries sharing a stripe, exactly one (the last in
// iteration order) has noDrop == false.
type WriteEntry struct {
	addr    *Word
	value   uint64
	mask    uint64
	lock    *lockCell
	version uint64
	noDrop  bool
}

// writeSet is a transaction's ordered buffer of WriteEntry, with a Bloom
// filter accelerating the "not present" case of membership tests.
type writeSet struct {
	entries    []WriteEntry
	bloom      bloomFilter
	nbAcquired int
}

func (ws *writeSet) reset() {
	ws.entries = ws.entries[:0]
	ws.bloom.reset()
	ws.nbAcquired = 0
}

// find returns the write-set entry for addr, or nil. The Bloom filter
// rejects addresses that are definitely absent without scanning; anything
// else falls through to an exact linear scan.
func (ws *writeSet) find(addr *Word) *WriteEntry {
	if !ws.bloom.maybeContains(addr) {
		return nil
	}
	for i := range ws.entries {
		if ws.entries[i].addr == addr {
			return &ws.entries[i]
		}
	}
	return nil
}

// appendNew adds a brand-new write-set entry (the caller has already
// established, via find, that addr is not yet present) and returns a
// pointer to it.
func (ws *writeSet) appendNew(addr *Word, value, mask uint64, lock *lockCell, version uint64) *WriteEntry {
	ws.entries = append(ws.entries, WriteEntry{
		addr:    addr,
		value:   value,
		mask:    mask,
		lock:    lock,
		version: version,
		noDrop:  true,
	})
	ws.bloom.add(addr)
	return &ws.entries[len(ws.entries)-1]
}
