package stm

import "runtime"

// spinWait should be called once per loop iteration while waiting on a lock
// word believed to be transiently owned by another transaction. There are
// no suspension points in this package's core loops (per the distilled
// spec's concurrency model): all waiting is bounded spinning cheapened with
// a scheduler yield, the same tactic fenilsonani-vcs's backoff helper uses.
func spinWait() {
	runtime.Gosched()
}
