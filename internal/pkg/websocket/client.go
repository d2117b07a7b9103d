package websocket

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512 * 1024 // 512KB
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development, in production you should restrict this
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RoomAuthorizer decides whether a user may join a room. It gates session
// rooms to their participants.
type RoomAuthorizer func(userID int64, room string) bool

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub *Hub

	// The WebSocket connection
	conn *websocket.Conn

	// Buffered channel of outbound events
	send chan []byte

	// User ID of the client
	userID int64

	// Rooms this client has joined
	rooms map[string]bool

	// Gate for joining session rooms
	authorize RoomAuthorizer

	// Logger instance
	logger zerolog.Logger
}

// readPump pumps events from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			// Don't log normal close conditions as warnings
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().
					Int64("userID", c.userID).
					Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().
					Err(err).
					Int64("userID", c.userID).
					Msg("Unexpected WebSocket close")
			} else {
				// Log other errors at debug level to avoid filling logs with normal disconnections
				c.logger.Debug().
					Err(err).
					Int64("userID", c.userID).
					Msg("WebSocket read error")
			}
			break
		}

		message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			c.logger.Error().
				Err(err).
				Int64("userID", c.userID).
				Str("message", string(message)).
				Msg("Failed to unmarshal client event")
			continue
		}

		// Make sure a user can't spoof events as other users
		event.SenderID = c.userID
		event.Timestamp = time.Now()

		c.handleEvent(&event)
	}
}

// handleEvent routes one inbound event. Room joins mutate membership, direct
// messages route to the recipient's personal room, signaling events relay to
// their session room untouched.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventJoinRoom, EventJoinVideoCall:
		if event.Room == "" {
			return
		}
		if c.authorize != nil && !c.authorize(c.userID, event.Room) {
			c.logger.Warn().
				Int64("userID", c.userID).
				Str("room", event.Room).
				Msg("Room join rejected")
			return
		}
		c.hub.JoinRoom(c, event.Room)
		if event.Type == EventJoinVideoCall {
			// Tell the peers someone entered the call
			c.hub.BroadcastToRoom(event)
		}

	case EventSendMessage:
		if event.RecipientID <= 0 || event.Content == "" {
			return
		}
		// Deliver to both sides so every open tab stays in sync
		recipientCopy := *event
		recipientCopy.Room = UserRoom(event.RecipientID)
		c.hub.BroadcastToRoom(&recipientCopy)

		senderCopy := *event
		senderCopy.Room = UserRoom(c.userID)
		c.hub.BroadcastToRoom(&senderCopy)

	case EventVideoOffer, EventVideoAnswer, EventVideoICE:
		if event.Room == "" || !c.rooms[event.Room] {
			return
		}
		c.hub.BroadcastToRoom(event)

	default:
		c.logger.Debug().
			Str("type", event.Type).
			Int64("userID", c.userID).
			Msg("Dropped event of unknown type")
	}
}

// writePump pumps events from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued events
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
