package stm

// Attr is a bitmask of attributes a transaction is begun with.
type Attr uint8

const (
	// ReadOnly transactions never call Write; Commit is then a no-op that
	// never touches the clock, and a stale read aborts instead of trying
	// to extend (there being no write set to protect by extending).
	ReadOnly Attr = 1 << iota
	// NoExtend disables extension: a read that finds a stripe newer than
	// the snapshot aborts instead of extending, and a write to such a
	// stripe aborts instead of being buffered.
	NoExtend
	// Irrevocable transactions spin past a foreign owner at commit instead
	// of aborting, and skip the read-set append and staleness check on
	// read. Region.Begin enforces there is at most one live at a time.
	Irrevocable
)

func (a Attr) has(f Attr) bool { return a&f != 0 }

type txStatus uint8

const (
	txIdle txStatus = iota
	txActive
	txCommitted
	txAborted
)

// Txn is a transaction context: status, snapshot window, read/write
// buffers, and attributes. The zero Txn is ready to be passed to
// Region.Begin; a façade may reuse one Txn across many begin/commit cycles
// by calling Begin again, which resets its buffers.
type Txn struct {
	id     uint32
	status txStatus
	attr   Attr

	start uint64
	end   uint64

	rSet readSet
	wSet writeSet

	locked []*WriteEntry // entries whose lock this commit attempt has acquired, for Rollback
}

// reset discards both buffers and clears acquisition bookkeeping, without
// touching id/status/attr/start/end — those are (re)assigned by Begin.
func (tx *Txn) reset() {
	tx.rSet.reset()
	tx.wSet.reset()
	tx.locked = tx.locked[:0]
}

// Status reports the transaction's current lifecycle state as a string, for
// diagnostics only; core logic never branches on it from outside this
// package.
func (tx *Txn) Status() string {
	switch tx.status {
	case txActive:
		return "active"
	case txCommitted:
		return "committed"
	case txAborted:
		return "aborted"
	default:
		return "idle"
	}
}
