package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/repositories"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/websocket"
)

// ChatService handles direct messages, conversation listings and admin
// broadcasts. Connected clients get messages pushed over the hub, offline
// users find them in the database.
type ChatService struct {
	conversationRepo *repositories.ConversationRepository
	userRepo         *repositories.UserRepository
	hub              *websocket.Hub
	logger           zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	conversationRepo *repositories.ConversationRepository,
	userRepo *repositories.UserRepository,
	hub *websocket.Hub,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		hub:              hub,
		logger:           logger,
	}
}

// SendMessage persists a direct message and pushes it to both participants
func (s *ChatService) SendMessage(ctx context.Context, senderID int64, req dto.SendMessageRequest) (*models.Message, error) {
	if senderID == req.RecipientID {
		return nil, apperrors.NewBadRequestError("cannot message yourself", apperrors.ErrBadRequest)
	}

	// Recipient must exist
	if _, err := s.userRepo.GetByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	conv, err := s.conversationRepo.FindOrCreate(ctx, senderID, req.RecipientID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        req.Content,
	}
	if err := s.conversationRepo.AddMessage(ctx, message); err != nil {
		return nil, err
	}

	s.push(message, req.RecipientID)

	return message, nil
}

// push delivers a stored message to both participants' personal rooms
func (s *ChatService) push(message *models.Message, recipientID int64) {
	if s.hub == nil {
		return
	}

	event := &websocket.Event{
		Type:        websocket.EventSendMessage,
		SenderID:    message.SenderID,
		RecipientID: recipientID,
		Content:     message.Content,
		Timestamp:   message.CreatedAt,
		ID:          message.ID,
	}

	recipientCopy := *event
	recipientCopy.Room = websocket.UserRoom(recipientID)
	s.hub.BroadcastToRoom(&recipientCopy)

	senderCopy := *event
	senderCopy.Room = websocket.UserRoom(message.SenderID)
	s.hub.BroadcastToRoom(&senderCopy)
}

// ListConversations retrieves the user's conversations with partner names
// and unread counts
func (s *ChatService) ListConversations(ctx context.Context, userID int64) ([]dto.ConversationSummary, error) {
	conversations, unread, err := s.conversationRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		partnerID := conv.OtherParticipant(userID)

		summary := dto.ConversationSummary{
			ID:          conv.ID,
			PartnerID:   partnerID,
			UnreadCount: int64(unread[conv.ID]),
		}
		if conv.LastMessageAt != nil {
			summary.LastMessageAt = conv.LastMessageAt.Format(time.RFC3339)
		}

		partner, err := s.userRepo.GetByID(ctx, partnerID)
		if err == nil {
			summary.PartnerName = partner.FullName()
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GetMessages retrieves a conversation's messages for one of its
// participants and marks the partner's messages as read
func (s *ChatService) GetMessages(ctx context.Context, conversationID, userID int64, page, pageSize int) ([]*models.Message, int64, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conv.HasParticipant(userID) {
		return nil, 0, apperrors.ErrPermissionDenied
	}

	messages, total, err := s.conversationRepo.GetMessages(ctx, conversationID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	if err := s.conversationRepo.MarkRead(ctx, conversationID, userID, time.Now()); err != nil {
		s.logger.Warn().Err(err).Int64("conversationId", conversationID).Msg("Failed to mark messages read")
	}

	return messages, total, nil
}

// Broadcast fans an admin message out to every targeted user as a regular
// conversation message flagged as broadcast
func (s *ChatService) Broadcast(ctx context.Context, adminID int64, req dto.BroadcastMessageRequest) (int, error) {
	var role *models.RoleType
	if req.Audience == "STUDENTS" {
		student := models.RoleStudent
		role = &student
	}

	userIDs, err := s.userRepo.ListIDsByRole(ctx, role)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, userID := range userIDs {
		if userID == adminID {
			continue
		}

		conv, err := s.conversationRepo.FindOrCreate(ctx, adminID, userID)
		if err != nil {
			s.logger.Error().Err(err).Int64("userId", userID).Msg("Broadcast: failed to resolve conversation")
			continue
		}

		message := &models.Message{
			ConversationID: conv.ID,
			SenderID:       adminID,
			Content:        req.Content,
			IsBroadcast:    true,
		}
		if err := s.conversationRepo.AddMessage(ctx, message); err != nil {
			s.logger.Error().Err(err).Int64("userId", userID).Msg("Broadcast: failed to store message")
			continue
		}

		s.push(message, userID)
		sent++
	}

	s.logger.Info().Int64("adminId", adminID).Str("audience", req.Audience).Int("sent", sent).Msg("Broadcast delivered")

	return sent, nil
}
