package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/services"
	"github.com/mentorlink/backend/internal/middleware"
	"github.com/mentorlink/backend/internal/pkg/helpers"
)

// ChatController handles direct messaging between users
type ChatController struct {
	chatService *services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// SendMessage persists a direct message and pushes it over websocket
// @Summary Send message
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Recipient and content"
// @Success 201 {object} dto.APIResponse "Stored message"
// @Failure 404 {object} dto.ErrorResponse "Recipient not found"
// @Router /chat/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	senderID := ctx.GetInt64(middleware.ContextUserID)

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	message, err := c.chatService.SendMessage(ctx.Request.Context(), senderID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(message))
}

// ListConversations returns the caller's conversations with unread counts
// @Summary List conversations
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationSummary} "Conversations"
// @Router /chat/conversations [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	conversations, err := c.chatService.ListConversations(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(conversations))
}

// GetMessages returns one conversation's messages, oldest first, and marks them read
// @Summary Get conversation messages
// @Tags chat
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Messages"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Router /chat/conversations/{id}/messages [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	conversationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid conversation ID")))
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	page, size := helpers.ParsePaginationParams(ctx)

	messages, total, err := c.chatService.GetMessages(ctx.Request.Context(), conversationID, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      messages,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// Broadcast fans out an announcement to all users or all students
// @Summary Broadcast announcement
// @Description Admin only. Delivers the message into every matching user's conversation.
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BroadcastMessageRequest true "Content and audience"
// @Success 200 {object} dto.APIResponse "Number of recipients"
// @Router /chat/broadcast [post]
func (c *ChatController) Broadcast(ctx *gin.Context) {
	adminID := ctx.GetInt64(middleware.ContextUserID)

	var req dto.BroadcastMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	sent, err := c.chatService.Broadcast(ctx.Request.Context(), adminID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"recipients": sent}))
}
