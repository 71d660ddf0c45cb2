package collab

import (
	"fmt"
	"sync"
	"time"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// ChatRelay holds the session's append-only chat transcript. Messages live
// only in memory; nothing is persisted past the session.
type ChatRelay struct {
	self models.Participant

	mu  sync.RWMutex
	log []models.ChatMessage
}

// NewChatRelay creates an empty transcript for the local participant.
func NewChatRelay(self models.Participant) *ChatRelay {
	return &ChatRelay{self: self}
}

// Compose builds a message authored by the local participant and appends it
// to the transcript immediately, before any broadcast round-trip. The id
// only needs to be unique within the session.
func (r *ChatRelay) Compose(text string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:         fmt.Sprintf("%d-%s", time.Now().UnixMilli(), r.self.ID),
		Text:       text,
		AuthorID:   r.self.ID,
		AuthorName: r.self.Name,
		Timestamp:  time.Now(),
	}

	r.mu.Lock()
	r.log = append(r.log, msg)
	r.mu.Unlock()

	return msg
}

// ApplyRemote appends a received message. No dedup: the channel never
// delivers a sender's own broadcast back to it.
func (r *ChatRelay) ApplyRemote(msg models.ChatMessage) {
	r.mu.Lock()
	r.log = append(r.log, msg)
	r.mu.Unlock()
}

// Transcript returns a copy of the message log in arrival order.
func (r *ChatRelay) Transcript() []models.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ChatMessage, len(r.log))
	copy(out, r.log)
	return out
}
