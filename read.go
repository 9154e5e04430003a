package stm

// Read performs a transactional load of addr under tx. On success it
// returns the value tx should see: either the buffered value from a prior
// Write in this same transaction, or the value published to shared memory
// as of a version within tx's snapshot window.
//
// On conflict, Read rolls tx back itself (see Rollback) and returns
// ErrValRead; tx is no longer usable until Begin is called again.
func (r *Region) Read(tx *Txn, addr *Word) (uint64, error) {
	// Step 1: a prior whole-word write in this transaction shortcuts
	// straight to the buffered value without touching the lock at all.
	if w := tx.wSet.find(addr); w != nil && w.mask == ^uint64(0) {
		return w.value, nil
	}

	lock := r.table.lockFor(addr)

	for {
		l1 := lock.acquireLoad()
		if decodeOwned(l1) {
			// Owned by someone (self-ownership cannot happen here: Read
			// never acquires a lock, only Commit does). Transient by
			// construction — Commit holds a stripe only across its own
			// publish window — so spin and reload rather than abort.
			spinWait()
			continue
		}

		version := decodeVersion(l1)

		if tx.attr.has(Irrevocable) {
			// Irrevocable: skip the staleness check and the read-set
			// append entirely, per the minimal irrevocable contract.
			value := addr.load()
			if w := tx.wSet.find(addr); w != nil {
				value = (value &^ w.mask) | (w.value & w.mask)
			}
			return value, nil
		}

		l2 := lock.acquireLoad()
		if l2 != l1 {
			continue
		}

		if version > tx.end {
			if tx.attr.has(ReadOnly) || tx.attr.has(NoExtend) || !r.extend(tx) {
				r.Rollback(tx, AbortValRead)
				return 0, ErrValRead
			}
		}

		value := addr.load()

		l3 := lock.acquireLoad()
		if l3 != l1 {
			continue
		}

		if w := tx.wSet.find(addr); w != nil {
			value = (value &^ w.mask) | (w.value & w.mask)
		}

		tx.rSet.append(lock, version)
		return value, nil
	}
}
