package stm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFailsOnForeignCommitSinceRead(t *testing.T) {
	r := NewRegion(0)
	w := NewWord(1)

	var tx Txn
	require.NoError(t, r.Begin(&tx, NoExtend))
	_, err := r.Read(&tx, w)
	require.NoError(t, err)

	var writer Txn
	require.NoError(t, r.Begin(&writer, 0))
	_, err = r.Write(&writer, w, 2, ^uint64(0))
	require.NoError(t, err)
	require.NoError(t, r.Commit(&writer))

	assert.False(t, r.validate(&tx), "expected validate to fail after a foreign commit touched a read stripe")
}

func TestValidatePassesOnSelfOwnedStripeAtSameVersion(t *testing.T) {
	r := NewRegion(0)
	a := NewWord(1)
	b := NewWord(2)

	var tx Txn
	require.NoError(t, r.Begin(&tx, 0))
	_, err := r.Read(&tx, a)
	require.NoError(t, err)
	// Writing b may or may not share a's stripe depending on the hash; what
	// matters here is exercising acquireWriteSet's self-ownership path when
	// it does, so write a itself too: after acquisition its own read-set
	// entry must still validate against the version recorded before lock.
	_, err = r.Write(&tx, a, 9, ^uint64(0))
	require.NoError(t, err)
	_, err = r.Write(&tx, b, 10, ^uint64(0))
	require.NoError(t, err)

	require.NoError(t, r.acquireWriteSet(&tx))
	assert.True(t, r.validate(&tx), "expected validate to pass against self-owned stripe at an unchanged version")
	r.Rollback(&tx, AbortNone)
}

func TestExtendAdvancesSnapshotOnSuccess(t *testing.T) {
	r := NewRegion(0)
	unrelated := NewWord(1)

	var tx Txn
	require.NoError(t, r.Begin(&tx, 0))
	before := tx.end

	var writer Txn
	require.NoError(t, r.Begin(&writer, 0))
	_, err := r.Write(&writer, unrelated, 2, ^uint64(0))
	require.NoError(t, err)
	require.NoError(t, r.Commit(&writer))

	assert.True(t, r.extend(&tx), "expected extend to succeed with an empty read set")
	assert.Greater(t, tx.end, before)
}
