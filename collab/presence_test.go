package collab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

func TestPresenceSyncReplacesRosterAtomically(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Upsert(models.Participant{ID: "stale", Name: "Old"})

	tracker.ReplaceAll([]models.Participant{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
	})

	require.Equal(t, 2, tracker.Size())
	ids := []string{tracker.Roster()[0].ID, tracker.Roster()[1].ID}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestPresenceSyncSkipsEntriesWithoutID(t *testing.T) {
	tracker := NewPresenceTracker()

	tracker.ReplaceAll([]models.Participant{
		{ID: "a", Name: "Alice"},
		{Name: "ghost"},
	})

	assert.Equal(t, 1, tracker.Size())
}

func TestPresenceJoinUpserts(t *testing.T) {
	tracker := NewPresenceTracker()

	tracker.Upsert(models.Participant{ID: "a", Name: "Alice"})
	tracker.Upsert(models.Participant{ID: "a", Name: "Alice W."})

	require.Equal(t, 1, tracker.Size())
	assert.Equal(t, "Alice W.", tracker.Roster()[0].Name)
}

func TestPresenceLeaveRemoves(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Upsert(models.Participant{ID: "a", Name: "Alice"})

	tracker.Remove("a")
	tracker.Remove("never-joined")

	assert.Equal(t, 0, tracker.Size())
}

func TestRosterOrderedByJoinTime(t *testing.T) {
	tracker := NewPresenceTracker()
	base := time.Now()

	tracker.Upsert(models.Participant{ID: "late", Name: "Late", JoinedAt: base.Add(time.Minute)})
	tracker.Upsert(models.Participant{ID: "early", Name: "Early", JoinedAt: base})

	roster := tracker.Roster()
	require.Len(t, roster, 2)
	assert.Equal(t, "early", roster[0].ID)
	assert.Equal(t, "late", roster[1].ID)
}
