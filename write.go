package stm

// Write buffers a write of value (under mask) to addr in tx's write set. No
// lock is acquired and nothing is published to addr now: WBCTL defers all
// lock acquisition and publication to Commit.
//
// Write returns ErrReadOnlyWrite (tx left active, not rolled back) if tx was
// begun with ReadOnly. On a genuine conflict it rolls tx back and returns
// ErrValWrite.
func (r *Region) Write(tx *Txn, addr *Word, value, mask uint64) (*WriteEntry, error) {
	if tx.attr.has(ReadOnly) {
		return nil, ErrReadOnlyWrite
	}

	lock := r.table.lockFor(addr)

	var l uint64
	for {
		l = lock.acquireLoad()
		if decodeOwned(l) {
			spinWait()
			continue
		}
		break
	}

	if w := tx.wSet.find(addr); w != nil {
		w.value = (w.value &^ mask) | (value & mask)
		w.mask |= mask
		return w, nil
	}

	version := decodeVersion(l)
	if version > tx.end && !tx.attr.has(Irrevocable) {
		if tx.attr.has(NoExtend) {
			r.Rollback(tx, AbortValWrite)
			return nil, ErrValWrite
		}
		if tx.rSet.find(lock) != nil {
			// A prior read already observed an older version of this
			// stripe; extension cannot make that read valid again, so
			// there is no point attempting it.
			r.Rollback(tx, AbortValWrite)
			return nil, ErrValWrite
		}
	}

	entry := tx.wSet.appendNew(addr, value, mask, lock, version)
	return entry, nil
}
