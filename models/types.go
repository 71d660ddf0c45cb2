package models

import (
	"time"
)

// FilterState is the flat search-criteria record shared by a session
// (property type, listing type, city, price bounds, ...). The collaboration
// core treats it as an opaque value; only the search layer interprets keys.
type FilterState map[string]any

// Clone returns a shallow copy. Filter values are scalars, so a shallow
// copy is enough to keep one participant's edits from aliasing another's.
func (f FilterState) Clone() FilterState {
	out := make(FilterState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Session is one shareable, time-limited collaborative search context.
// It is created once, loaded read-only, and never mutated afterward except
// for the access counter.
type Session struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"ownerId"`
	Filters     FilterState `json:"filters"`
	CreatedAt   time.Time   `json:"createdAt"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	AccessCount int         `json:"accessCount"`
}

// Usable reports whether the session can still be opened. Expiry is checked
// once at load time; an already-open session is never re-checked.
func (s Session) Usable(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// Participant represents one connected client in a shared search session.
// The ID is stable per browser session, not an authenticated identity.
type Participant struct {
	ID       string    `json:"participantId"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CursorPosition is the last known pointer position of a participant.
// Y is in page coordinates (viewport y plus scroll offset) so positions
// stay comparable across participants with different scroll offsets.
type CursorPosition struct {
	ParticipantID string  `json:"participantId"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

// HistoryEntry is one named point in the shared filter-edit timeline.
type HistoryEntry struct {
	ID        string      `json:"entryId"`
	Filters   FilterState `json:"filters"`
	Author    string      `json:"authorName"`
	Timestamp time.Time   `json:"timestamp"`
}

// HistorySnapshot carries a participant's full timeline plus the index of
// the active entry, so remote peers adopt the same array and pointer.
type HistorySnapshot struct {
	History      []HistoryEntry `json:"history"`
	CurrentIndex int            `json:"currentIndex"`
}

// ChatMessage is one entry in the in-memory session transcript.
type ChatMessage struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorID   string    `json:"userId"`
	AuthorName string    `json:"userName"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event is the broadcast envelope exchanged over a session channel.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
