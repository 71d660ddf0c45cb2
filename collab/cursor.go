package collab

import (
	"sync"
	"time"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// DefaultCursorInterval is the minimum gap between two cursor broadcasts
// from one client.
const DefaultCursorInterval = 50 * time.Millisecond

// CursorBroadcaster throttles outbound pointer positions and tracks the
// last known position of every remote participant.
//
// Throttling is trailing-edge: the first move in a window arms a timer and
// the most recent position when it fires is the one sent. Earlier positions
// in the same window are discarded, not queued.
type CursorBroadcaster struct {
	self     models.Participant
	interval time.Duration
	send     func(models.Event)

	mu      sync.Mutex
	pending *models.CursorPosition
	timer   *time.Timer
	closed  bool
	remote  map[string]models.CursorPosition
}

// NewCursorBroadcaster creates a broadcaster for the local participant.
// send is invoked with at most one cursor event per interval.
func NewCursorBroadcaster(self models.Participant, interval time.Duration, send func(models.Event)) *CursorBroadcaster {
	if interval <= 0 {
		interval = DefaultCursorInterval
	}
	return &CursorBroadcaster{
		self:     self,
		interval: interval,
		send:     send,
		remote:   make(map[string]models.CursorPosition),
	}
}

// Move records a local pointer position. scrollY is the page scroll offset;
// it is folded into y so broadcast positions are scroll-independent.
func (c *CursorBroadcaster) Move(x, y, scrollY float64) {
	pos := models.CursorPosition{
		ParticipantID: c.self.ID,
		Name:          c.self.Name,
		Color:         c.self.Color,
		X:             x,
		Y:             y + scrollY,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.pending = &pos
	if c.timer == nil {
		c.timer = time.AfterFunc(c.interval, c.flush)
	}
}

// flush sends the latest pending position and reopens the window.
func (c *CursorBroadcaster) flush() {
	c.mu.Lock()
	pos := c.pending
	c.pending = nil
	c.timer = nil
	closed := c.closed
	c.mu.Unlock()

	if pos == nil || closed {
		return
	}

	c.send(models.Event{
		Type:    models.EventTypeCursor,
		Payload: *pos,
	})
}

// ApplyRemote upserts a received cursor position. Broadcasts carrying the
// local participant's own id are ignored so a transport that echoes
// messages back to the sender cannot create a ghost of ourselves.
func (c *CursorBroadcaster) ApplyRemote(pos models.CursorPosition) {
	if pos.ParticipantID == c.self.ID {
		return
	}

	c.mu.Lock()
	c.remote[pos.ParticipantID] = pos
	c.mu.Unlock()
}

// Forget removes a participant's cursor. Called when that participant
// leaves so a cursor never outlives its owner.
func (c *CursorBroadcaster) Forget(participantID string) {
	c.mu.Lock()
	delete(c.remote, participantID)
	c.mu.Unlock()
}

// Positions returns the live remote cursors for overlay rendering.
func (c *CursorBroadcaster) Positions() []models.CursorPosition {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CursorPosition, 0, len(c.remote))
	for _, pos := range c.remote {
		out = append(out, pos)
	}
	return out
}

// Close stops the throttle timer and drops any pending broadcast.
func (c *CursorBroadcaster) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.pending = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
