package collab

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// HistoryStack is the shared, navigable filter-edit timeline: an indexed
// append-and-truncate log with a single current index naming the entry
// that corresponds to the live filter state.
type HistoryStack struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
	current int
}

// NewHistoryStack seeds the timeline with one entry for the session's
// initial filters at index 0.
func NewHistoryStack(initial models.FilterState) *HistoryStack {
	return &HistoryStack{
		entries: []models.HistoryEntry{newEntry(initial, models.InitialHistoryAuthor)},
		current: 0,
	}
}

func newEntry(filters models.FilterState, author string) models.HistoryEntry {
	return models.HistoryEntry{
		ID:        uuid.New().String(),
		Filters:   filters.Clone(),
		Author:    author,
		Timestamp: time.Now(),
	}
}

// Commit truncates any redo branch beyond the current index, appends a new
// entry, and points at it. Standard editor undo semantics: editing after an
// undo discards the abandoned future.
func (h *HistoryStack) Commit(filters models.FilterState, author string) models.HistorySnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.current+1], newEntry(filters, author))
	h.current = len(h.entries) - 1

	return h.snapshotLocked()
}

// Undo steps back one entry. Returns the filters to activate, the snapshot
// to broadcast, and false if already at the oldest entry.
func (h *HistoryStack) Undo() (models.FilterState, models.HistorySnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == 0 {
		return nil, models.HistorySnapshot{}, false
	}

	h.current--
	return h.entries[h.current].Filters.Clone(), h.snapshotLocked(), true
}

// Redo steps forward one entry; no-op at the newest entry.
func (h *HistoryStack) Redo() (models.FilterState, models.HistorySnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == len(h.entries)-1 {
		return nil, models.HistorySnapshot{}, false
	}

	h.current++
	return h.entries[h.current].Filters.Clone(), h.snapshotLocked(), true
}

// Restore jumps directly to an entry, bypassing the single-step path.
// Out-of-range indexes are a no-op.
func (h *HistoryStack) Restore(index int) (models.FilterState, models.HistorySnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 || index >= len(h.entries) {
		return nil, models.HistorySnapshot{}, false
	}

	h.current = index
	return h.entries[h.current].Filters.Clone(), h.snapshotLocked(), true
}

// Replace adopts a remote snapshot verbatim: the whole array and the
// current index, no merge. Snapshots that would break the index invariant
// are rejected so one corrupt broadcast cannot wedge the timeline.
func (h *HistoryStack) Replace(snap models.HistorySnapshot) bool {
	if len(snap.History) == 0 || snap.CurrentIndex < 0 || snap.CurrentIndex >= len(snap.History) {
		return false
	}

	entries := make([]models.HistoryEntry, len(snap.History))
	for i, entry := range snap.History {
		entry.Filters = entry.Filters.Clone()
		entries[i] = entry
	}

	h.mu.Lock()
	h.entries = entries
	h.current = snap.CurrentIndex
	h.mu.Unlock()

	return true
}

// Snapshot returns a copy of the timeline suitable for broadcasting.
func (h *HistoryStack) Snapshot() models.HistorySnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.snapshotLocked()
}

func (h *HistoryStack) snapshotLocked() models.HistorySnapshot {
	entries := make([]models.HistoryEntry, len(h.entries))
	copy(entries, h.entries)

	return models.HistorySnapshot{
		History:      entries,
		CurrentIndex: h.current,
	}
}

// CurrentIndex returns the index of the active entry.
func (h *HistoryStack) CurrentIndex() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.current
}

// Len returns the number of entries in the timeline.
func (h *HistoryStack) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}
