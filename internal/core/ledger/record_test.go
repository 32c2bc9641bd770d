package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQueue_EnqueueAssignsIncreasingIndices(t *testing.T) {
	q := newRecordQueue()

	assert.True(t, q.isEmpty())
	assert.Equal(t, uint64(1), q.nextIndex())

	i1 := q.enqueue(100, 1000)
	i2 := q.enqueue(200, 2000)
	i3 := q.enqueue(300, 3000)

	assert.Equal(t, uint64(1), i1)
	assert.Equal(t, uint64(2), i2)
	assert.Equal(t, uint64(3), i3)
	assert.Equal(t, uint64(1), q.head)
	assert.Equal(t, uint64(3), q.tail)
	assert.False(t, q.isEmpty())

	// Linkage: 1 <-> 2 <-> 3
	assert.Equal(t, uint64(2), q.getAt(1).Next)
	assert.Equal(t, uint64(1), q.getAt(2).Prev)
	assert.Equal(t, uint64(3), q.getAt(2).Next)
	assert.Equal(t, uint64(2), q.getAt(3).Prev)
}

func TestRecordQueue_GetAtAbsentReturnsZeroRecord(t *testing.T) {
	q := newRecordQueue()
	rec := q.getAt(42)
	assert.False(t, rec.Exists())
	assert.Zero(t, rec.Amount)
}

func TestRecordQueue_IndexNumberingSurvivesEmptying(t *testing.T) {
	q := newRecordQueue()

	q.enqueue(100, 1000)
	q.enqueue(200, 2000)
	require.NoError(t, q.deleteAt(1))
	require.NoError(t, q.deleteAt(2))

	assert.True(t, q.isEmpty())
	// Tail is never reset by deletion, so the next index keeps counting.
	idx := q.enqueue(300, 3000)
	assert.Equal(t, uint64(3), idx)
	assert.Equal(t, uint64(3), q.head)
	assert.Equal(t, uint64(3), q.tail)
}

func TestRecordQueue_DeleteMiddleRelinksNeighbours(t *testing.T) {
	q := newRecordQueue()
	q.enqueue(1, 1000)
	q.enqueue(2, 2000)
	q.enqueue(3, 3000)

	require.NoError(t, q.deleteAt(2))

	assert.Equal(t, uint64(3), q.getAt(1).Next)
	assert.Equal(t, uint64(1), q.getAt(3).Prev)
	assert.Equal(t, uint64(1), q.head)
	assert.Equal(t, uint64(3), q.tail)
	assert.False(t, q.getAt(2).Exists())
}

func TestRecordQueue_DeleteHeadAdvancesHead(t *testing.T) {
	q := newRecordQueue()
	q.enqueue(1, 1000)
	q.enqueue(2, 2000)

	require.NoError(t, q.deleteAt(1))

	assert.Equal(t, uint64(2), q.head)
	assert.Equal(t, uint64(0), q.getAt(2).Prev)
}

func TestRecordQueue_DeleteTailMovesTailBack(t *testing.T) {
	q := newRecordQueue()
	q.enqueue(1, 1000)
	q.enqueue(2, 2000)

	require.NoError(t, q.deleteAt(2))

	assert.Equal(t, uint64(1), q.tail)
	assert.Equal(t, uint64(0), q.getAt(1).Next)

	// The freed index is not reused.
	idx := q.enqueue(3, 3000)
	assert.Equal(t, uint64(2), idx)
}

func TestRecordQueue_DeleteLastRecordLeavesTail(t *testing.T) {
	q := newRecordQueue()
	q.enqueue(1, 1000)

	require.NoError(t, q.deleteAt(1))

	assert.Equal(t, uint64(0), q.head)
	assert.Equal(t, uint64(1), q.tail)
}

func TestRecordQueue_DeleteAbsent(t *testing.T) {
	q := newRecordQueue()
	assert.Error(t, q.deleteAt(0))
	assert.Error(t, q.deleteAt(7))
}

func TestRecordQueue_DequeueHeadDestroy(t *testing.T) {
	q := newRecordQueue()
	q.enqueue(100, 1000)
	q.enqueue(200, 2000)

	rec, idx, err := q.dequeueHead(true)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), idx)
	assert.Equal(t, int64(100), rec.Amount)
	assert.Equal(t, uint64(2), q.head)
	assert.False(t, q.getAt(1).Exists())
}

func TestRecordQueue_DequeueHeadDetachKeepsStorage(t *testing.T) {
	q := newRecordQueue()
	q.enqueue(100, 1000)
	q.enqueue(200, 2000)

	_, idx, err := q.dequeueHead(false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), idx)
	assert.Equal(t, uint64(2), q.head)

	// Detached record stays addressable with its next pointer intact.
	detached := q.getAt(1)
	assert.True(t, detached.Exists())
	assert.Equal(t, uint64(0), detached.Prev)
	assert.Equal(t, uint64(2), detached.Next)
}

func TestRecordQueue_DequeueHeadEmpty(t *testing.T) {
	q := newRecordQueue()
	_, _, err := q.dequeueHead(true)
	assert.Error(t, err)
}

func TestRecordQueue_First(t *testing.T) {
	q := newRecordQueue()
	_, _, err := q.first()
	assert.Error(t, err)

	q.enqueue(50, 1000)
	rec, idx, err := q.first()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), idx)
	assert.Equal(t, int64(50), rec.Amount)
}

func TestRecordQueue_FreezeAndUnfreeze(t *testing.T) {
	q := newRecordQueue()
	q.enqueue(100, 1000)

	require.NoError(t, q.freeze(1, 60))
	assert.Equal(t, int64(60), q.getAt(1).Frozen)

	// Over the unfrozen remainder.
	assert.Error(t, q.freeze(1, 50))

	require.NoError(t, q.unfreeze(1, 20, false))
	assert.Equal(t, int64(40), q.getAt(1).Frozen)

	// Over the frozen amount.
	assert.Error(t, q.unfreeze(1, 50, false))

	// Destroy removes the record entirely.
	require.NoError(t, q.unfreeze(1, 40, true))
	assert.False(t, q.getAt(1).Exists())
}

func TestRecordQueue_FreezeAbsentRecord(t *testing.T) {
	q := newRecordQueue()
	assert.Error(t, q.freeze(3, 10))
	assert.Error(t, q.unfreeze(3, 10, false))
}

func TestRecordQueue_DecrementAmount(t *testing.T) {
	q := newRecordQueue()
	q.enqueue(100, 1000)

	require.NoError(t, q.decrementAmount(1, 30))
	assert.Equal(t, int64(70), q.getAt(1).Amount)

	assert.Error(t, q.decrementAmount(1, 71))
	assert.Error(t, q.decrementAmount(9, 1))
}
