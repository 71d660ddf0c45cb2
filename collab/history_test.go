package collab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

func TestHistorySeedsInitialEntry(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})

	require.Equal(t, 1, h.Len())
	require.Equal(t, 0, h.CurrentIndex())

	snap := h.Snapshot()
	assert.Equal(t, models.InitialHistoryAuthor, snap.History[0].Author)
	assert.Equal(t, models.FilterState{"city": "Jakarta"}, snap.History[0].Filters)
	assert.NotEmpty(t, snap.History[0].ID)
}

func TestUndoAtOldestEntryIsNoOp(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})

	_, _, ok := h.Undo()

	require.False(t, ok)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.CurrentIndex())
}

func TestRedoAtNewestEntryIsNoOp(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})
	h.Commit(models.FilterState{"city": "Bali"}, "Alice")

	_, _, ok := h.Redo()

	require.False(t, ok)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.CurrentIndex())
}

func TestUndoRedoWalkTheTimeline(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})
	h.Commit(models.FilterState{"city": "Bali"}, "Alice")

	filters, snap, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, models.FilterState{"city": "Jakarta"}, filters)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Len(t, snap.History, 2)

	filters, snap, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, models.FilterState{"city": "Bali"}, filters)
	assert.Equal(t, 1, snap.CurrentIndex)
}

func TestCommitAfterUndoTruncatesRedoBranch(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})
	h.Commit(models.FilterState{"city": "Bali"}, "Alice")

	_, _, ok := h.Undo()
	require.True(t, ok)

	snap := h.Commit(models.FilterState{"city": "Lombok"}, "Alice")

	require.Equal(t, 2, h.Len())
	require.Equal(t, 1, h.CurrentIndex())
	assert.Equal(t, models.FilterState{"city": "Lombok"}, snap.History[1].Filters)

	// The abandoned Bali entry is gone, so redo has nowhere to go.
	_, _, ok = h.Redo()
	assert.False(t, ok)
}

func TestRestoreJumpsDirectly(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})
	h.Commit(models.FilterState{"city": "Bali"}, "Alice")
	h.Commit(models.FilterState{"city": "Lombok"}, "Bob")

	filters, snap, ok := h.Restore(0)
	require.True(t, ok)
	assert.Equal(t, models.FilterState{"city": "Jakarta"}, filters)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Len(t, snap.History, 3)

	_, _, ok = h.Restore(3)
	assert.False(t, ok)
	_, _, ok = h.Restore(-1)
	assert.False(t, ok)
}

func TestReplaceAdoptsRemoteSnapshotVerbatim(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})

	remote := models.HistorySnapshot{
		History: []models.HistoryEntry{
			{ID: "e1", Filters: models.FilterState{"city": "Jakarta"}, Author: "Initial"},
			{ID: "e2", Filters: models.FilterState{"city": "Bali"}, Author: "Bob"},
		},
		CurrentIndex: 1,
	}

	require.True(t, h.Replace(remote))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.CurrentIndex())
	assert.Equal(t, "e2", h.Snapshot().History[1].ID)
}

func TestReplaceRejectsSnapshotsBreakingTheIndexInvariant(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})
	entry := models.HistoryEntry{ID: "e1", Filters: models.FilterState{}}

	cases := []struct {
		name string
		snap models.HistorySnapshot
	}{
		{"empty history", models.HistorySnapshot{History: nil, CurrentIndex: 0}},
		{"negative index", models.HistorySnapshot{History: []models.HistoryEntry{entry}, CurrentIndex: -1}},
		{"index past end", models.HistorySnapshot{History: []models.HistoryEntry{entry}, CurrentIndex: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.False(t, h.Replace(tc.snap))
			assert.Equal(t, 1, h.Len())
			assert.Equal(t, 0, h.CurrentIndex())
		})
	}
}

func TestIndexInvariantHoldsAcrossOperations(t *testing.T) {
	h := NewHistoryStack(models.FilterState{"city": "Jakarta"})

	check := func() {
		idx, length := h.CurrentIndex(), h.Len()
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, length)
	}

	check()
	h.Commit(models.FilterState{"city": "Bali"}, "Alice")
	check()
	h.Undo()
	check()
	h.Undo()
	check()
	h.Redo()
	check()
	h.Commit(models.FilterState{"city": "Lombok"}, "Alice")
	check()
	h.Restore(0)
	check()
}
