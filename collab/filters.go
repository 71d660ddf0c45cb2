package collab

import (
	"sync"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// SearchFunc refreshes property results for a filter state. It is invoked
// fire-and-forget on every filter change; results arrive through the search
// layer's own resolution path and are never awaited here.
type SearchFunc func(models.FilterState)

// FilterSync owns the single canonical filter state visible to the UI and
// the search layer. Conflict policy is last-write-wins: whichever update is
// applied last becomes canonical, with no merge of concurrent edits.
type FilterSync struct {
	mu      sync.RWMutex
	current models.FilterState
	search  SearchFunc
}

// NewFilterSync creates the synchronizer with the session's initial state.
func NewFilterSync(initial models.FilterState, search SearchFunc) *FilterSync {
	return &FilterSync{
		current: initial.Clone(),
		search:  search,
	}
}

// Apply overwrites the canonical state and kicks off a results refresh.
// Used for both optimistic local edits and received remote edits; a remote
// value is applied unconditionally even if it reverts a local edit still in
// flight.
func (f *FilterSync) Apply(filters models.FilterState) {
	next := filters.Clone()

	f.mu.Lock()
	f.current = next
	f.mu.Unlock()

	if f.search != nil {
		f.search(next)
	}
}

// Current returns a copy of the canonical filter state.
func (f *FilterSync) Current() models.FilterState {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.current.Clone()
}
