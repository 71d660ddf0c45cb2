package channel

import (
	"sync"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// Inbox capacity per subscriber. Broadcasts are fire-and-forget; a
// subscriber that falls this far behind starts losing messages rather
// than blocking the sender.
const inboxSize = 64

// Subscription is one participant's attachment to a session channel.
type Subscription struct {
	Participant models.Participant
	inbox       chan models.Event
}

// Inbox returns the channel on which broadcasts from other participants
// arrive. It is closed when the subscription is removed from the hub.
func (s *Subscription) Inbox() <-chan models.Event {
	return s.inbox
}

// Hub is the pub/sub topic for one shared search session. It delivers
// broadcasts to every subscriber except the sender and emits presence
// sync/join/leave events as participants come and go.
type Hub struct {
	mutex sync.RWMutex
	subs  map[*Subscription]bool
}

// NewHub creates an empty session channel.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[*Subscription]bool),
	}
}

// Subscribe registers a participant. The new subscriber receives a
// presence sync carrying the full roster (itself included); everyone else
// receives a join event for the newcomer.
func (h *Hub) Subscribe(p models.Participant) *Subscription {
	sub := &Subscription{
		Participant: p,
		inbox:       make(chan models.Event, inboxSize),
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.subs[sub] = true

	roster := make([]models.Participant, 0, len(h.subs))
	for s := range h.subs {
		roster = append(roster, s.Participant)
	}

	deliver(sub, models.Event{
		Type:    models.EventTypePresenceSync,
		Payload: roster,
	})

	for other := range h.subs {
		if other == sub {
			continue
		}
		deliver(other, models.Event{
			Type:    models.EventTypePresenceJoin,
			Payload: p,
		})
	}

	return sub
}

// Unsubscribe removes a participant, closes its inbox, and emits a leave
// event to the remaining subscribers.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.subs[sub]; !exists {
		return
	}

	delete(h.subs, sub)
	close(sub.inbox)

	for other := range h.subs {
		deliver(other, models.Event{
			Type:    models.EventTypePresenceLeave,
			Payload: sub.Participant,
		})
	}
}

// Broadcast delivers an event to every subscriber except the sender.
// Delivery is fire-and-forget; per-sender ordering is preserved because
// fan-out happens synchronously under the hub lock.
func (h *Hub) Broadcast(from *Subscription, event models.Event) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for sub := range h.subs {
		if sub == from {
			continue
		}
		deliver(sub, event)
	}
}

// Len returns the number of current subscribers.
func (h *Hub) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subs)
}

// deliver sends without blocking, dropping the event if the inbox is full.
func deliver(sub *Subscription, event models.Event) {
	select {
	case sub.inbox <- event:
		// Event sent successfully
	default:
		// Subscriber is backed up; drop rather than block the sender
	}
}
