package stm

// Rollback releases every lock tx acquired during a failed commit attempt
// (restoring each stripe to the version it held before acquisition) and
// discards both of tx's buffers. It is called internally by Read, Write,
// and Commit whenever they detect a conflict; a façade never needs to call
// it directly except to abandon a transaction outright (e.g. on a
// context cancellation it chooses to honor, which is its concern, not the
// core's).
func (r *Region) Rollback(tx *Txn, reason AbortReason) {
	for i := len(tx.locked) - 1; i >= 0; i-- {
		w := tx.locked[i]
		w.lock.release(w.version)
	}
	tx.locked = tx.locked[:0]
	tx.rSet.reset()
	tx.wSet.reset()

	if reason != AbortNone {
		r.stats.recordAbort(reason)
	}
	r.endTxn(tx, txAborted)
}
