package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types carried over the socket
const (
	EventJoinRoom      = "join-room"
	EventSendMessage   = "send-message"
	EventVideoOffer    = "video-offer"
	EventVideoAnswer   = "video-answer"
	EventVideoICE      = "video-ice-candidate"
	EventJoinVideoCall = "join-video-call"
)

// UserRoom is the personal room every client joins on connect. Direct
// messages are delivered there.
func UserRoom(userID int64) string {
	return fmt.Sprintf("user-%d", userID)
}

// SessionRoom groups the participants of one session's video call
func SessionRoom(sessionID int64) string {
	return fmt.Sprintf("session-%d", sessionID)
}

// Event is one message relayed over WebSocket. Signaling events (offer,
// answer, ICE candidate) carry their SDP or candidate blob in Payload and
// are relayed as-is, never persisted.
type Event struct {
	// Type of event: join-room, send-message, video-offer, video-answer,
	// video-ice-candidate or join-video-call
	Type string `json:"type"`

	// Room this event targets
	Room string `json:"room"`

	// User who sent the event
	SenderID int64 `json:"senderId"`

	// Recipient user ID, set on send-message events
	RecipientID int64 `json:"recipientId,omitempty"`

	// Chat message content
	Content string `json:"content,omitempty"`

	// Opaque signaling payload (SDP offer/answer or ICE candidate)
	Payload json.RawMessage `json:"payload,omitempty"`

	// Timestamp when the event was sent
	Timestamp time.Time `json:"timestamp"`

	// Message ID from the database, filled in after persistence
	ID int64 `json:"id,omitempty"`
}

// Hub maintains the set of active clients and relays events to room members
type Hub struct {
	// Registered clients organized by room
	rooms map[string]map[*Client]bool

	// Channel for inbound events from clients
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to the rooms map
	mu sync.RWMutex

	// Mutex for event listeners
	listenersMu sync.RWMutex

	// Event listeners
	eventListeners []chan *Event

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:      make(chan *Event),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		rooms:          make(map[string]map[*Client]bool),
		eventListeners: []chan *Event{},
		logger:         logger,
	}
}

// Run starts the hub, handling client registrations and event relays
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.relayEvent(event)
		}
	}
}

// registerClient adds a new client to its initial rooms
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range client.rooms {
		h.addToRoomLocked(room, client)
	}

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

// JoinRoom adds an already registered client to a room
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.rooms[room] = true
	h.addToRoomLocked(room, client)

	h.logger.Debug().
		Int64("userID", client.userID).
		Str("room", room).
		Msg("Client joined room")
}

func (h *Hub) addToRoomLocked(room string, client *Client) {
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
}

// unregisterClient removes a client from every room it joined
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	for room := range client.rooms {
		if clients, ok := h.rooms[room]; ok {
			if _, ok := clients[client]; ok {
				delete(clients, client)
				removed = true
				if len(clients) == 0 {
					delete(h.rooms, room)
				}
			}
		}
	}

	if removed {
		close(client.send)
		h.logger.Info().
			Int64("userID", client.userID).
			Msg("Client unregistered")
	}
}

// relayEvent delivers an event to all clients in its room
func (h *Hub) relayEvent(event *Event) {
	// First, notify event listeners (persistence)
	h.notifyEventListeners(event)

	h.mu.RLock()

	clients, ok := h.rooms[event.Room]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Str("room", event.Room).
			Str("type", event.Type).
			Msg("No clients in room for relay")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Str("room", event.Room).
			Msg("Failed to marshal event for relay")
		return
	}

	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
			// Event sent successfully
		default:
			// Client's send buffer is full, they might be slow or disconnected
			slow = append(slow, client)
		}
	}
	clientCount := len(clients)
	h.mu.RUnlock()

	// relayEvent runs on the Run goroutine, the only reader of h.unregister,
	// so slow clients are dropped inline rather than through the channel
	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("room", event.Room).
		Str("type", event.Type).
		Int("clientCount", clientCount).
		Msg("Event relayed to room")
}

// notifyEventListeners sends an event to all registered listeners
func (h *Hub) notifyEventListeners(event *Event) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.eventListeners {
		// Non-blocking send to avoid stalling on slow listeners
		select {
		case listener <- event:
			// Event sent successfully
		default:
			h.logger.Warn().Msg("Skipped slow event listener")
		}
	}
}

// BroadcastToRoom sends an event to all connected clients in a room
func (h *Hub) BroadcastToRoom(event *Event) {
	h.broadcast <- event
}

// GetClientsCount returns the number of connected clients in a room
func (h *Hub) GetClientsCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.rooms[room]; ok {
		return len(clients)
	}
	return 0
}

// AddEventListener registers a channel to receive all events
func (h *Hub) AddEventListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.eventListeners = append(h.eventListeners, listener)
	h.logger.Info().Msg("Added new event listener")
}

// RemoveEventListener removes a listener from the hub
func (h *Hub) RemoveEventListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.eventListeners {
		if l == listener {
			h.eventListeners[i] = h.eventListeners[len(h.eventListeners)-1]
			h.eventListeners = h.eventListeners[:len(h.eventListeners)-1]
			h.logger.Info().Msg("Removed event listener")
			break
		}
	}
}
