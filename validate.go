package stm

// validate re-checks every entry in tx's read set against the current state
// of its stripe lock. It succeeds iff every entry still reflects either the
// version it recorded, or (if the stripe is now owned) ownership by tx
// itself at that same pre-acquire version.
func (r *Region) validate(tx *Txn) bool {
	for i := range tx.rSet.entries {
		e := &tx.rSet.entries[i]
		l := e.lock.acquireLoad()
		if decodeOwned(l) {
			ownerID, slot := decodeOwner(l)
			if ownerID != tx.id {
				return false
			}
			if tx.wSet.entries[slot].version != e.version {
				return false
			}
			continue
		}
		if decodeVersion(l) != e.version {
			return false
		}
	}
	return true
}

// extend tries to slide tx's snapshot forward to the current clock value.
// It samples the clock, revalidates the read set against that instant, and
// on success advances tx.end. extend does not check tx.attr.NoExtend; its
// only caller, Read, checks that before calling it. Write never extends: on
// a stripe newer than tx.end it aborts with ErrValWrite under NoExtend or
// when the stripe is already in the read set, and otherwise buffers the
// write.
func (r *Region) extend(tx *Txn) bool {
	now := r.clk.sample()
	if !r.validate(tx) {
		return false
	}
	tx.end = now
	return true
}
