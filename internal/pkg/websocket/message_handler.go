package websocket

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/repositories"
)

// MessageHandler persists chat events from the hub to the database.
// Signaling events pass through the hub untouched and are never stored.
type MessageHandler struct {
	conversationRepo *repositories.ConversationRepository
	hub              *Hub
	logger           zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	conversationRepo *repositories.ConversationRepository,
	hub *Hub,
	logger zerolog.Logger,
) *MessageHandler {
	return &MessageHandler{
		conversationRepo: conversationRepo,
		hub:              hub,
		logger:           logger,
	}
}

// Start begins processing events from the hub
func (h *MessageHandler) Start() {
	go h.processEvents()
}

// processEvents listens for events and saves chat messages to the database
func (h *MessageHandler) processEvents() {
	eventChan := make(chan *Event, 64)
	h.hub.AddEventListener(eventChan)

	for event := range eventChan {
		if event.Type != EventSendMessage {
			continue
		}
		// A sent message is relayed to both personal rooms; persist only the
		// recipient-room copy so it lands in the database once. Events that
		// already carry a database ID were stored by the REST path.
		if event.Room != UserRoom(event.RecipientID) || event.ID != 0 {
			continue
		}
		h.persistMessage(event)
	}
}

// persistMessage saves one chat message to its conversation
func (h *MessageHandler) persistMessage(event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conv, err := h.conversationRepo.FindOrCreate(ctx, event.SenderID, event.RecipientID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("senderID", event.SenderID).
			Int64("recipientID", event.RecipientID).
			Msg("Failed to resolve conversation for WebSocket message")
		return
	}

	message := &models.Message{
		ConversationID: conv.ID,
		SenderID:       event.SenderID,
		Content:        event.Content,
	}

	if err := h.conversationRepo.AddMessage(ctx, message); err != nil {
		h.logger.Error().
			Err(err).
			Int64("conversationID", conv.ID).
			Int64("senderID", event.SenderID).
			Msg("Failed to save WebSocket message to database")
		return
	}

	event.ID = message.ID

	h.logger.Debug().
		Int64("messageID", message.ID).
		Int64("conversationID", conv.ID).
		Msg("WebSocket message saved to database")
}
