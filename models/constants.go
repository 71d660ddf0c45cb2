package models

import "hash/fnv"

// Event types
const (
	EventTypeFilters       = "filters"
	EventTypeCursor        = "cursor"
	EventTypeFilterHistory = "filter_history"
	EventTypeChatMessage   = "chat_message"
	EventTypePresenceSync  = "presence_sync"
	EventTypePresenceJoin  = "presence_join"
	EventTypePresenceLeave = "presence_leave"
)

// Author label for the seed history entry created when a session is opened
const InitialHistoryAuthor = "Initial"

// Cursor colors assigned to participants
var cursorPalette = []string{
	"#E53E3E",
	"#DD6B20",
	"#D69E2E",
	"#38A169",
	"#319795",
	"#3182CE",
	"#805AD5",
	"#D53F8C",
}

// ColorFor derives a participant's cursor color from its id. The mapping is
// deterministic, so every client renders the same participant identically.
func ColorFor(participantID string) string {
	h := fnv.New32a()
	h.Write([]byte(participantID))
	return cursorPalette[h.Sum32()%uint32(len(cursorPalette))]
}
