package collab

import (
	"sort"
	"sync"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// PresenceTracker maintains the live roster of a session's participants.
// The roster is replaced wholesale on a presence sync and patched on
// join/leave deltas.
type PresenceTracker struct {
	mu     sync.RWMutex
	roster map[string]models.Participant
}

// NewPresenceTracker creates an empty roster.
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		roster: make(map[string]models.Participant),
	}
}

// ReplaceAll swaps the roster atomically for the full snapshot supplied by
// the transport on (re)connect.
func (t *PresenceTracker) ReplaceAll(participants []models.Participant) {
	next := make(map[string]models.Participant, len(participants))
	for _, p := range participants {
		if p.ID == "" {
			continue
		}
		next[p.ID] = p
	}

	t.mu.Lock()
	t.roster = next
	t.mu.Unlock()
}

// Upsert adds or refreshes one participant.
func (t *PresenceTracker) Upsert(p models.Participant) {
	t.mu.Lock()
	t.roster[p.ID] = p
	t.mu.Unlock()
}

// Remove drops a participant from the roster.
func (t *PresenceTracker) Remove(participantID string) {
	t.mu.Lock()
	delete(t.roster, participantID)
	t.mu.Unlock()
}

// Roster returns the participants ordered by join time for stable UI
// rendering (avatar stack, "N editing" badge).
func (t *PresenceTracker) Roster() []models.Participant {
	t.mu.RLock()
	out := make([]models.Participant, 0, len(t.roster))
	for _, p := range t.roster {
		out = append(out, p)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})

	return out
}

// Size returns the number of participants currently present.
func (t *PresenceTracker) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.roster)
}
