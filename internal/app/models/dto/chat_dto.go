package dto

// SendMessageRequest is the payload for sending a direct message
type SendMessageRequest struct {
	RecipientID int64  `json:"recipientId" binding:"required,gt=0"`
	Content     string `json:"content" binding:"required,max=5000"`
}

// BroadcastMessageRequest is an admin message fanned out to many users
type BroadcastMessageRequest struct {
	Content  string `json:"content" binding:"required,max=5000"`
	Audience string `json:"audience" binding:"required,oneof=ALL STUDENTS"`
}

// ConversationSummary is one item of the conversation list
type ConversationSummary struct {
	ID            int64  `json:"id"`
	PartnerID     int64  `json:"partnerId"`
	PartnerName   string `json:"partnerName"`
	LastMessage   string `json:"lastMessage,omitempty"`
	UnreadCount   int64  `json:"unreadCount"`
	LastMessageAt string `json:"lastMessageAt,omitempty"`
}
