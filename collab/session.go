package collab

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cipondok/astra-villa-nexus-sub022/channel"
	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// SessionLoader resolves a share identifier to its session record. A load
// returns false for both unknown and expired identifiers, without telling
// callers which, and counts one access on success.
type SessionLoader interface {
	LoadSession(id string) (models.Session, bool)
}

// Option configures an opened session.
type Option func(*Session)

// WithCursorInterval overrides the cursor broadcast throttle window.
func WithCursorInterval(d time.Duration) Option {
	return func(s *Session) {
		s.cursorInterval = d
	}
}

// Session is one participant's live attachment to a shared search: it owns
// the presence tracker, cursor broadcaster, filter synchronizer, history
// stack, and chat relay, and routes every inbound event to exactly one of
// them.
type Session struct {
	id        string
	self      models.Participant
	expiresAt time.Time

	hub *channel.Hub
	sub *channel.Subscription

	presence *PresenceTracker
	cursors  *CursorBroadcaster
	filters  *FilterSync
	history  *HistoryStack
	chat     *ChatRelay

	cursorInterval time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

// OpenSession loads the shared search identified by sessionID and attaches
// the local participant to its channel. Expired and missing sessions both
// yield (nil, false); a successful open seeds the history with the initial
// filters at index 0, counts one access, subscribes to the channel, and
// starts the dispatch loop.
func OpenSession(sessionID string, loader SessionLoader, hub *channel.Hub, self models.Participant, search SearchFunc, opts ...Option) (*Session, bool) {
	record, ok := loader.LoadSession(sessionID)
	if !ok {
		return nil, false
	}

	if self.ID == "" {
		self.ID = uuid.New().String()
	}
	if self.Color == "" {
		self.Color = models.ColorFor(self.ID)
	}
	if self.JoinedAt.IsZero() {
		self.JoinedAt = time.Now()
	}

	s := &Session{
		id:             record.ID,
		self:           self,
		expiresAt:      record.ExpiresAt,
		hub:            hub,
		presence:       NewPresenceTracker(),
		filters:        NewFilterSync(record.Filters, search),
		history:        NewHistoryStack(record.Filters),
		chat:           NewChatRelay(self),
		cursorInterval: DefaultCursorInterval,
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cursors = NewCursorBroadcaster(self, s.cursorInterval, func(ev models.Event) {
		s.hub.Broadcast(s.sub, ev)
	})

	s.sub = hub.Subscribe(self)
	go s.run()

	return s, true
}

// Close detaches from the channel and stops the dispatch loop. This is the
// only cancellation point: individual in-flight broadcasts are never
// awaited or cancelled.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.cursors.Close()
		s.hub.Unsubscribe(s.sub)
	})
}

// ID returns the share identifier.
func (s *Session) ID() string {
	return s.id
}

// Self returns the local participant.
func (s *Session) Self() models.Participant {
	return s.self
}

// ExpiresAt returns the session's expiry as checked at load time. A
// session that was open before expiry is not disconnected mid-flight.
func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// Filters returns the current canonical filter state.
func (s *Session) Filters() models.FilterState {
	return s.filters.Current()
}

// Roster returns the current participants, local one included.
func (s *Session) Roster() []models.Participant {
	return s.presence.Roster()
}

// RosterSize returns the number of connected participants.
func (s *Session) RosterSize() int {
	return s.presence.Size()
}

// Cursors returns the live remote cursor positions.
func (s *Session) Cursors() []models.CursorPosition {
	return s.cursors.Positions()
}

// History returns the shared timeline snapshot for UI display.
func (s *Session) History() models.HistorySnapshot {
	return s.history.Snapshot()
}

// Transcript returns the chat messages received so far.
func (s *Session) Transcript() []models.ChatMessage {
	return s.chat.Transcript()
}

// ApplyFilters commits a local edit: the state is applied optimistically,
// results are refreshed, a history entry is recorded, and both the new
// filters and the updated timeline are broadcast so peers adopt the same
// array and pointer.
func (s *Session) ApplyFilters(filters models.FilterState) {
	s.filters.Apply(filters)
	snap := s.history.Commit(filters, s.self.Name)

	s.broadcast(models.Event{
		Type:    models.EventTypeFilters,
		Payload: filters.Clone(),
	})
	s.broadcast(models.Event{
		Type:    models.EventTypeFilterHistory,
		Payload: snap,
	})
}

// Undo steps the shared timeline back one entry. Returns false at the
// oldest entry.
func (s *Session) Undo() bool {
	filters, snap, ok := s.history.Undo()
	if !ok {
		return false
	}

	s.applyTimeline(filters, snap)
	return true
}

// Redo steps the shared timeline forward one entry. Returns false at the
// newest entry.
func (s *Session) Redo() bool {
	filters, snap, ok := s.history.Redo()
	if !ok {
		return false
	}

	s.applyTimeline(filters, snap)
	return true
}

// Restore jumps the shared timeline to a specific entry.
func (s *Session) Restore(index int) bool {
	filters, snap, ok := s.history.Restore(index)
	if !ok {
		return false
	}

	s.applyTimeline(filters, snap)
	return true
}

// applyTimeline activates a history entry locally and broadcasts both the
// filters and the timeline so every peer lands on the same entry.
func (s *Session) applyTimeline(filters models.FilterState, snap models.HistorySnapshot) {
	s.filters.Apply(filters)

	s.broadcast(models.Event{
		Type:    models.EventTypeFilters,
		Payload: filters.Clone(),
	})
	s.broadcast(models.Event{
		Type:    models.EventTypeFilterHistory,
		Payload: snap,
	})
}

// MoveCursor records a local pointer position for throttled broadcast.
func (s *Session) MoveCursor(x, y, scrollY float64) {
	s.cursors.Move(x, y, scrollY)
}

// SendChat appends a message to the local transcript and broadcasts it.
// Blank messages are rejected.
func (s *Session) SendChat(text string) (models.ChatMessage, error) {
	if text == "" {
		return models.ChatMessage{}, models.ErrEmptyChatText
	}

	msg := s.chat.Compose(text)
	s.broadcast(models.Event{
		Type:    models.EventTypeChatMessage,
		Payload: msg,
	})

	return msg, nil
}

func (s *Session) broadcast(event models.Event) {
	s.hub.Broadcast(s.sub, event)
}

// run consumes the subscription inbox until the session is closed.
func (s *Session) run() {
	for {
		select {
		case event, ok := <-s.sub.Inbox():
			if !ok {
				return
			}
			s.dispatch(event)
		case <-s.done:
			return
		}
	}
}

// dispatch routes one inbound event to its owning component. Payloads that
// fail to decode are dropped; a corrupt broadcast must never take down a
// participant's session.
func (s *Session) dispatch(event models.Event) {
	switch event.Type {
	case models.EventTypeFilters:
		var filters models.FilterState
		if !decodeInto(event.Payload, &filters) || filters == nil {
			return
		}
		s.filters.Apply(filters)

	case models.EventTypeCursor:
		var pos models.CursorPosition
		if !decodeInto(event.Payload, &pos) || pos.ParticipantID == "" {
			return
		}
		s.cursors.ApplyRemote(pos)

	case models.EventTypeFilterHistory:
		var snap models.HistorySnapshot
		if !decodeInto(event.Payload, &snap) {
			return
		}
		if s.history.Replace(snap) {
			// Activate the snapshot's current entry so the timeline and
			// the live filters never diverge, even when the paired
			// filters broadcast was lost.
			s.filters.Apply(snap.History[snap.CurrentIndex].Filters)
		}

	case models.EventTypeChatMessage:
		var msg models.ChatMessage
		if !decodeInto(event.Payload, &msg) || msg.ID == "" {
			return
		}
		s.chat.ApplyRemote(msg)

	case models.EventTypePresenceSync:
		var roster []models.Participant
		if !decodeInto(event.Payload, &roster) {
			return
		}
		s.presence.ReplaceAll(roster)

	case models.EventTypePresenceJoin:
		var p models.Participant
		if !decodeInto(event.Payload, &p) || p.ID == "" {
			return
		}
		s.presence.Upsert(p)

	case models.EventTypePresenceLeave:
		var p models.Participant
		if !decodeInto(event.Payload, &p) || p.ID == "" {
			return
		}
		// A participant must never outlive its cursor or vice versa.
		s.presence.Remove(p.ID)
		s.cursors.Forget(p.ID)
	}
}

// decodeInto accepts either an in-process typed payload or a JSON payload
// from the websocket bridge.
func decodeInto[T any](payload any, out *T) bool {
	if v, ok := payload.(T); ok {
		*out = v
		return true
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
