// Package runtime is the minimal retrying façade the stm package's core
// protocol deliberately leaves out: a begin/speculate/commit loop with
// backoff on conflict, kept in its own package so stm itself has no opinion
// about retry policy.
//
// The loop shape is grounded in tiancaiamao-stm's Atomically/runWithTxn;
// the backoff constants follow SeleniaProject-Orizon's stm.Run.
package runtime

import (
	"errors"
	"math/rand"
	"time"

	"github.com/txcore/stm"
)

const (
	backoffBase = 50 * time.Microsecond
	backoffMax  = 10 * time.Millisecond
	backoffCap  = 4 // doubling step cap: base<<backoffCap is the largest fixed step before jitter
)

func backoff(attempt int) {
	step := attempt
	if step > backoffCap {
		step = backoffCap
	}
	sleep := backoffBase << uint(step)
	if sleep > backoffMax {
		sleep = backoffMax
	}
	jitter := time.Duration(rand.Intn(200)) * time.Microsecond
	d := sleep + jitter
	if d > backoffMax {
		d = backoffMax
	}
	time.Sleep(d)
}

// retryable reports whether err is one of the core's transient errors (the
// four conflict abort reasons or stm.ErrIrrevocableBusy), as opposed to a
// programming error like stm.ErrReadOnlyWrite that retrying would never fix.
func retryable(err error) bool {
	switch {
	case errors.Is(err, stm.ErrValRead),
		errors.Is(err, stm.ErrValWrite),
		errors.Is(err, stm.ErrWWConflict),
		errors.Is(err, stm.ErrValCommit),
		errors.Is(err, stm.ErrIrrevocableBusy):
		return true
	default:
		return false
	}
}

// Atomically runs fn as a transaction against r, retrying with exponential
// backoff until it commits. fn should report a conflict by propagating
// whatever error stm.Region.Read/Write/Commit returned; Atomically treats
// any other error fn returns as fatal and gives up immediately, rolling the
// transaction back first.
func Atomically(r *stm.Region, attr stm.Attr, fn func(*stm.Txn) error) error {
	var txn stm.Txn
	return Run(r, &txn, attr, fn)
}

// Run is Atomically but with a caller-supplied, reusable *stm.Txn, the way
// tiancaiamao-stm's Run avoids an allocation per call in hot retry loops.
func Run(r *stm.Region, txn *stm.Txn, attr stm.Attr, fn func(*stm.Txn) error) error {
	for attempt := 0; ; attempt++ {
		if err := r.Begin(txn, attr); err != nil {
			if errors.Is(err, stm.ErrIrrevocableBusy) {
				backoff(attempt)
				continue
			}
			return err
		}

		if err := fn(txn); err != nil {
			if retryable(err) {
				backoff(attempt)
				continue
			}
			r.Rollback(txn, stm.AbortNone)
			return err
		}

		if err := r.Commit(txn); err != nil {
			if retryable(err) {
				backoff(attempt)
				continue
			}
			return err
		}
		return nil
	}
}
