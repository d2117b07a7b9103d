package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades authenticated HTTP requests to WebSocket connections
type Handler struct {
	hub       *Hub
	authorize RoomAuthorizer
	logger    zerolog.Logger
}

// NewHandler creates a new WebSocket handler. authorize gates joining
// session rooms and may be nil to allow everything.
func NewHandler(hub *Hub, authorize RoomAuthorizer, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:       hub,
		authorize: authorize,
		logger:    logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for chat and video signaling
// @Description Upgrades the HTTP connection to WebSocket. The client lands in its personal room and can join session rooms for video calls.
// @Tags chat, websocket
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	// Get user ID from context (set by auth middleware)
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	userID, ok := userIDInterface.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	// Every client starts in its personal room where direct messages land
	client := &Client{
		hub:       h.hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		userID:    userID,
		rooms:     map[string]bool{UserRoom(userID): true},
		authorize: h.authorize,
		logger:    h.logger,
	}
	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
