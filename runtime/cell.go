package runtime

import (
	"sync"
	"sync/atomic"

	"github.com/txcore/stm"
)

// Cell is a generic transactional location for values that do not fit
// naturally into a single uint64 word, mirroring SeleniaProject-Orizon's
// generic TVar[T].
//
// Internally a Cell is an stm.Word holding a slot index into a side table;
// Store writes the new value into a fresh slot before the index is ever
// handed to stm.Write, so any transaction that later observes the new index
// (through the core's ordinary commit-release / read-acquire pairing) also
// observes a fully formed value at that index — the index word is the only
// thing the core's protocol needs to reason about versions and conflicts
// for.
//
// Cell trades memory for simplicity: every Store call grows the slot table,
// even if the transaction that issued it later aborts or retries. Callers
// on a hot retry path and not just occasional contention should prefer
// packing their value into an stm.Word directly instead.
type Cell[T any] struct {
	word *stm.Word

	mu    sync.RWMutex
	slots []atomic.Value
}

type cellBox[T any] struct{ v T }

// NewCell constructs a Cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	c := &Cell[T]{word: stm.NewWord(0)}
	var box atomic.Value
	box.Store(cellBox[T]{v: initial})
	c.slots = append(c.slots, box)
	return c
}

// Load reads the cell's value under tx.
func (c *Cell[T]) Load(r *stm.Region, tx *stm.Txn) (T, error) {
	idx, err := r.Read(tx, c.word)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.RLock()
	v := c.slots[idx].Load().(cellBox[T]).v
	c.mu.RUnlock()

	return v, nil
}

// Store buffers val as the cell's new value under tx. Other transactions
// only observe it once tx commits.
func (c *Cell[T]) Store(r *stm.Region, tx *stm.Txn, val T) error {
	c.mu.Lock()
	idx := uint64(len(c.slots))
	var box atomic.Value
	box.Store(cellBox[T]{v: val})
	c.slots = append(c.slots, box)
	c.mu.Unlock()

	_, err := r.Write(tx, c.word, idx, ^uint64(0))
	return err
}
