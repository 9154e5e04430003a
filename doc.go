// Package stm implements a word-based software transactional memory engine
// using write-back, commit-time locking (WBCTL).
//
// Transactions buffer their reads (as version-stamped lock observations) and
// writes (as values) privately; nothing is published to shared memory until
// Commit, and shared-memory locks are only ever held during the Commit call
// itself, never across a transaction's lifetime. A shared Region owns one
// global version clock and one striped lock table; every Word a caller
// declares is addressed through that table via a hash of its pointer.
//
// This package is the protocol core only: it has no retry policy and does
// not loop. Callers drive Begin/Read/Write/Commit/Rollback directly, or use
// the sibling runtime package for a ready-made retrying façade.
package stm
