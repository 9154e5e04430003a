package stm

import "sync/atomic"

// ClockMax is the headroom this package assumes the façade will never run
// the clock into: once a clock's value exceeds ClockMax, a façade must
// quiesce every live transaction and call Region.Reset before continuing.
// The core itself never checks for this; see Region.NearOverflow.
const ClockMax = uint64(1) << 62

// Region owns one global version clock and one lock table: the two pieces
// of shared state every transaction created against it contends over. Tests
// and independent callers each construct their own Region instead of
// sharing package-level globals, so a fresh memory universe is just
// NewRegion(0) away.
type Region struct {
	clk   clock
	table *lockTable

	nextID atomic.Uint32

	irrevocable atomic.Bool

	stats Stats
}

// NewRegion constructs a Region with a lock table sized to 2^bits stripes.
// bits == 0 selects defaultTableBits.
func NewRegion(bits uint8) *Region {
	if bits == 0 {
		bits = defaultTableBits
	}
	return &Region{table: newLockTable(bits)}
}

func (r *Region) nextTxID() uint32 {
	// Wrapping is acceptable: a transaction id only needs to be unique
	// among transactions simultaneously live, and 2^32 concurrent/live
	// transactions never happens in one process.
	return r.nextID.Add(1)
}

// Begin starts tx against r: samples the clock into start/end, resets its
// buffers, and records attr. If attr includes Irrevocable and another
// transaction already holds the irrevocable slot, Begin returns
// ErrIrrevocableBusy and tx is left unchanged; the caller (façade) decides
// whether and when to retry.
func (r *Region) Begin(tx *Txn, attr Attr) error {
	if attr.has(Irrevocable) {
		if !r.irrevocable.CompareAndSwap(false, true) {
			r.stats.aborts[AbortIrrevocableBusy].Add(1)
			return ErrIrrevocableBusy
		}
	}
	tx.id = r.nextTxID()
	tx.attr = attr
	now := r.clk.sample()
	tx.start = now
	tx.end = now
	tx.status = txActive
	tx.reset()
	r.stats.begins.Add(1)
	return nil
}

// endTxn releases the irrevocable slot, if tx held it, and marks tx
// terminal. Called from both Commit's success path and Rollback.
func (r *Region) endTxn(tx *Txn, status txStatus) {
	if tx.attr.has(Irrevocable) {
		r.irrevocable.Store(false)
	}
	tx.status = status
}

// NearOverflow reports whether the clock has advanced far enough that a
// façade should quiesce all live transactions and call Reset before letting
// any more transactions begin. The core never calls this itself.
func (r *Region) NearOverflow() bool {
	return r.clk.sample() > ClockMax
}

// Reset rewinds the clock to newStart. Callers must ensure no transaction is
// active against r when calling this — it is only safe once every live
// transaction has been quiesced, exactly the precondition NearOverflow
// exists to let a façade detect.
func (r *Region) Reset(newStart uint64) {
	r.clk.v.Store(newStart)
}

// Stats returns a point-in-time snapshot of r's contention counters.
func (r *Region) Stats() StatsSnapshot {
	return r.stats.snapshot()
}
