package channel

import "sync"

// Registry maps share identifiers to live hubs. A hub exists only while at
// least one participant is subscribed; collaborative state is never
// persisted beyond that.
type Registry struct {
	mutex sync.Mutex
	hubs  map[string]*Hub
}

// NewRegistry creates an empty hub registry.
func NewRegistry() *Registry {
	return &Registry{
		hubs: make(map[string]*Hub),
	}
}

// Get returns the hub for a session, creating it on first use.
func (r *Registry) Get(sessionID string) *Hub {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	hub, exists := r.hubs[sessionID]
	if !exists {
		hub = NewHub()
		r.hubs[sessionID] = hub
	}

	return hub
}

// Release drops the session's hub if it has no subscribers left.
func (r *Registry) Release(sessionID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	hub, exists := r.hubs[sessionID]
	if exists && hub.Len() == 0 {
		delete(r.hubs, sessionID)
	}
}
