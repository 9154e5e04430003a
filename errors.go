package stm

import "errors"

// AbortReason classifies why a transaction was rolled back. All reasons are
// transient: the operation that observed one had no side effects on shared
// state beyond locks that Rollback already released, and a façade may always
// restart the transaction from Begin.
type AbortReason int

const (
	// AbortNone is the zero value; never returned as an error cause.
	AbortNone AbortReason = iota
	// AbortValRead: a read observed a version beyond the snapshot and
	// extension was unavailable or failed.
	AbortValRead
	// AbortValWrite: a write observed a stripe whose timestamp moved past
	// the snapshot after that stripe was already in the read set.
	AbortValWrite
	// AbortWWConflict: commit found a stripe already owned by another
	// transaction.
	AbortWWConflict
	// AbortValCommit: commit's revalidation sweep failed.
	AbortValCommit
	// AbortIrrevocableBusy: another transaction already holds the
	// irrevocable slot.
	AbortIrrevocableBusy
)

func (r AbortReason) String() string {
	switch r {
	case AbortValRead:
		return "VAL_READ"
	case AbortValWrite:
		return "VAL_WRITE"
	case AbortWWConflict:
		return "WW_CONFLICT"
	case AbortValCommit:
		return "VAL_COMMIT"
	case AbortIrrevocableBusy:
		return "IRREVOCABLE"
	default:
		return "NONE"
	}
}

// Sentinel errors, one per AbortReason, so callers can use errors.Is instead
// of comparing reason codes.
var (
	ErrValRead         = errors.New("stm: snapshot invalid on read")
	ErrValWrite        = errors.New("stm: snapshot invalid on write")
	ErrWWConflict      = errors.New("stm: write-write conflict at commit")
	ErrValCommit       = errors.New("stm: revalidation failed at commit")
	ErrIrrevocableBusy = errors.New("stm: another transaction is irrevocable")

	// ErrReadOnlyWrite is returned by Write when called on a transaction
	// begun with the ReadOnly attribute; it is not one of the four
	// transient abort reasons because it indicates a programming error in
	// the caller, not a conflict, so it does not roll the transaction
	// back.
	ErrReadOnlyWrite = errors.New("stm: write called on a read-only transaction")
)

func errForReason(r AbortReason) error {
	switch r {
	case AbortValRead:
		return ErrValRead
	case AbortValWrite:
		return ErrValWrite
	case AbortWWConflict:
		return ErrWWConflict
	case AbortValCommit:
		return ErrValCommit
	case AbortIrrevocableBusy:
		return ErrIrrevocableBusy
	default:
		return nil
	}
}
