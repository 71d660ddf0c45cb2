package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cipondok/astra-villa-nexus-sub022/channel"
	"github.com/cipondok/astra-villa-nexus-sub022/db"
	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// Package-level WebSocket upgrader
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Event kinds a client may inject into a session channel. Presence events
// are emitted by the hub itself and never accepted from the wire.
var clientEventTypes = map[string]bool{
	models.EventTypeFilters:       true,
	models.EventTypeCursor:        true,
	models.EventTypeFilterHistory: true,
	models.EventTypeChatMessage:   true,
}

// wireEvent is the broadcast envelope as it crosses the websocket. The
// payload stays raw JSON; each receiving component decodes and validates
// its own kind.
type wireEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// standardResponse sends a consistent JSON response
func standardResponse(c *gin.Context, code int, status string, data interface{}, err string) {
	response := gin.H{"status": status}

	if data != nil {
		response["data"] = data
	}

	if err != "" {
		response["error"] = err
	}

	c.JSON(code, response)
}

// CollabHandler handles shared search session requests
type CollabHandler struct {
	store      *db.Store
	registry   *channel.Registry
	defaultTTL time.Duration
}

// NewCollabHandler creates a new CollabHandler
func NewCollabHandler(store *db.Store, registry *channel.Registry, defaultTTL time.Duration) *CollabHandler {
	return &CollabHandler{
		store:      store,
		registry:   registry,
		defaultTTL: defaultTTL,
	}
}

// CreateSharedSearch handles requests to share the caller's current filters
func (h *CollabHandler) CreateSharedSearch(c *gin.Context) {
	var req struct {
		OwnerID string             `json:"ownerId" binding:"required"`
		Filters models.FilterState `json:"filters" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, models.ErrInvalidFilters.Error())
		return
	}

	if strings.TrimSpace(req.OwnerID) == "" {
		standardResponse(c, http.StatusBadRequest, "error", nil, models.ErrInvalidOwner.Error())
		return
	}

	session := h.store.CreateSession(req.OwnerID, req.Filters, h.defaultTTL)

	standardResponse(c, http.StatusCreated, "created", gin.H{
		"shareId":   session.ID,
		"expiresAt": session.ExpiresAt,
	}, "")
}

// GetSharedSearch opens a shared search. Expired and unknown share ids get
// the same response so valid identifiers cannot be probed. Each successful
// open counts one access.
func (h *CollabHandler) GetSharedSearch(c *gin.Context) {
	session, ok := h.store.LoadSession(c.Param("id"))
	if !ok {
		standardResponse(c, http.StatusGone, "expired", nil, models.ErrSessionExpired.Error())
		return
	}

	standardResponse(c, http.StatusOK, "ok", gin.H{
		"id":          session.ID,
		"filters":     session.Filters,
		"createdAt":   session.CreatedAt,
		"expiresAt":   session.ExpiresAt,
		"accessCount": session.AccessCount,
	}, "")
}

// StreamSession handles WebSocket connections for real-time collaboration.
// The connection is bridged onto the session's hub: hub events are pumped
// to the socket and inbound frames are re-broadcast to the other
// participants.
func (h *CollabHandler) StreamSession(c *gin.Context) {
	sessionID := c.Param("id")

	if _, ok := h.store.PeekSession(sessionID); !ok {
		standardResponse(c, http.StatusGone, "expired", nil, models.ErrSessionExpired.Error())
		return
	}

	participant := participantFromQuery(c)

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		standardResponse(c, http.StatusInternalServerError, "error", nil, "Could not upgrade to WebSocket")
		return
	}
	defer conn.Close()

	hub := h.registry.Get(sessionID)
	sub := hub.Subscribe(participant)
	defer func() {
		hub.Unsubscribe(sub)
		h.registry.Release(sessionID)
	}()

	// Setup ping ticker for keep-alive
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	done := make(chan struct{})

	go relayIncoming(conn, hub, sub, done)

	for {
		select {
		case event, ok := <-sub.Inbox():
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// relayIncoming re-broadcasts client frames to the rest of the session.
// Malformed frames and unknown event kinds are dropped, not fatal.
func relayIncoming(conn *websocket.Conn, hub *channel.Hub, sub *channel.Subscription, done chan struct{}) {
	defer close(done)

	for {
		messageType, raw, err := conn.ReadMessage()
		if err != nil {
			// Client disconnected or error occurred
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var event wireEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			continue
		}
		if !clientEventTypes[event.Type] {
			continue
		}

		hub.Broadcast(sub, models.Event{
			Type:    event.Type,
			Payload: event.Payload,
		})
	}
}

// participantFromQuery builds the connecting participant's identity. The
// id is stable per browser session; unauthenticated visitors get a
// generated one.
func participantFromQuery(c *gin.Context) models.Participant {
	id := c.Query("participantId")
	if id == "" {
		id = uuid.New().String()
	}

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		name = "Guest"
	}

	return models.Participant{
		ID:       id,
		Name:     name,
		Color:    models.ColorFor(id),
		JoinedAt: time.Now(),
	}
}
