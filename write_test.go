package stm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadOnlyRejected(t *testing.T) {
	r := NewRegion(0)
	w := NewWord(0)

	var tx Txn
	require.NoError(t, r.Begin(&tx, ReadOnly))

	_, err := r.Write(&tx, w, 1, ^uint64(0))
	assert.ErrorIs(t, err, ErrReadOnlyWrite)
	// Unlike a conflict, this must not roll the transaction back.
	assert.Equal(t, txActive, tx.status)
}

func TestWriteMergesDisjointMasks(t *testing.T) {
	r := NewRegion(0)
	w := NewWord(0)

	var tx Txn
	require.NoError(t, r.Begin(&tx, 0))
	_, err := r.Write(&tx, w, 0x0F, 0x0F)
	require.NoError(t, err)
	_, err = r.Write(&tx, w, 0xF0, 0xF0)
	require.NoError(t, err)
	require.NoError(t, r.Commit(&tx))

	assert.Equal(t, uint64(0xFF), w.load(), "expected merged writes to produce 0xFF")
}

func TestWriteNoExtendAbortsOnStaleStripe(t *testing.T) {
	r := NewRegion(0)
	w := NewWord(1)

	var tx Txn
	require.NoError(t, r.Begin(&tx, NoExtend))

	var writer Txn
	require.NoError(t, r.Begin(&writer, 0))
	_, err := r.Write(&writer, w, 2, ^uint64(0))
	require.NoError(t, err)
	require.NoError(t, r.Commit(&writer))

	_, err = r.Write(&tx, w, 3, ^uint64(0))
	assert.ErrorIs(t, err, ErrValWrite)
}

func TestWriteAbortsWhenStripeAlreadyRead(t *testing.T) {
	r := NewRegion(0)
	a := NewWord(1)

	var tx Txn
	require.NoError(t, r.Begin(&tx, 0))
	_, err := r.Read(&tx, a)
	require.NoError(t, err)

	var writer Txn
	require.NoError(t, r.Begin(&writer, 0))
	_, err = r.Write(&writer, a, 9, ^uint64(0))
	require.NoError(t, err)
	require.NoError(t, r.Commit(&writer))

	// tx already has a read-set entry for a's stripe at the old version;
	// extending the snapshot would only re-validate a read that's now
	// certain to fail, so Write must abort outright instead of trying.
	_, err = r.Write(&tx, a, 5, ^uint64(0))
	assert.ErrorIs(t, err, ErrValWrite)
}
