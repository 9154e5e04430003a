package stm

// Commit attempts to make tx's buffered writes visible. A read-only
// transaction (empty write set) always succeeds without touching the
// clock. Otherwise Commit runs the three-phase WBCTL protocol: acquire
// every written stripe in reverse write-set order, fetch a commit
// timestamp, revalidate the read set unless no concurrent transaction could
// have committed since tx's snapshot was taken (an Irrevocable transaction
// never revalidates), then publish and release.
//
// On success tx.status becomes committed. On conflict Commit rolls tx back
// itself and returns one of ErrWWConflict or ErrValCommit.
func (r *Region) Commit(tx *Txn) error {
	if len(tx.wSet.entries) == 0 {
		r.endTxn(tx, txCommitted)
		r.stats.commits.Add(1)
		return nil
	}

	if err := r.acquireWriteSet(tx); err != nil {
		return err
	}

	// fetchIncrement already returns the clock's new value (Go's
	// atomic.Uint64.Add semantics), so no further "+1" is needed here the
	// way the distilled algorithm's C macro (which returns the pre-
	// increment value) would require; see DESIGN.md.
	cts := r.clk.fetchIncrement()

	if tx.end != cts-1 && !tx.attr.has(Irrevocable) {
		if !r.validate(tx) {
			r.Rollback(tx, AbortValCommit)
			return ErrValCommit
		}
	}

	r.publishAndRelease(tx, cts)

	r.endTxn(tx, txCommitted)
	r.stats.commits.Add(1)
	return nil
}

// acquireWriteSet runs Phase A: lock acquisition in reverse write-set
// order. Reverse order, plus self-ownership detection via (ownerTxID,
// slot), is what makes two transactions racing on overlapping stripes
// resolve deterministically instead of deadlocking: whichever CAS lands
// first wins the stripe, and the loser either sees its own earlier entry
// (skip) or a foreign owner (conflict).
func (r *Region) acquireWriteSet(tx *Txn) error {
	entries := tx.wSet.entries
	for i := len(entries) - 1; i >= 0; i-- {
		w := &entries[i]
		for {
			l := w.lock.acquireLoad()
			if decodeOwned(l) {
				ownerID, _ := decodeOwner(l)
				if ownerID == tx.id {
					// Self-owned: an earlier-iterated entry on this same
					// stripe already acquired it and will be the stripe
					// tail. Leave noDrop alone (it stays true: this entry
					// is not the tail) and move on.
					break
				}
				if tx.attr.has(Irrevocable) {
					spinWait()
					continue
				}
				r.Rollback(tx, AbortWWConflict)
				return ErrWWConflict
			}
			if !w.lock.tryAcquire(l, tx.id, i) {
				continue
			}
			w.noDrop = false
			w.version = decodeVersion(l)
			tx.locked = append(tx.locked, w)
			tx.wSet.nbAcquired++
			break
		}
	}
	return nil
}

// publishAndRelease runs Phase C: install every write-set entry's value
// (whole-word store if mask is all-ones, read-modify-write splice
// otherwise) and release each stripe's tail lock with the commit
// timestamp. Non-tail entries (noDrop == true) only publish; they never
// touch the lock, because the tail entry on their shared stripe already
// will.
func (r *Region) publishAndRelease(tx *Txn, cts uint64) {
	for i := range tx.wSet.entries {
		w := &tx.wSet.entries[i]
		switch {
		case w.mask == ^uint64(0):
			w.addr.store(w.value)
		case w.mask != 0:
			cur := w.addr.load()
			w.addr.store((cur &^ w.mask) | (w.value & w.mask))
		}
		if !w.noDrop {
			w.lock.release(cts)
		}
	}
}
