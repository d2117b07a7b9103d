package models

import "time"

// Conversation is a direct message thread between two users
type Conversation struct {
	ID            int64      `json:"id" db:"id"`
	UserAID       int64      `json:"userAId" db:"user_a_id"`
	UserBID       int64      `json:"userBId" db:"user_b_id"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty" db:"last_message_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	UserA *User `json:"userA,omitempty"`
	UserB *User `json:"userB,omitempty"`
}

// OtherParticipant returns the conversation partner of userID
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// HasParticipant reports whether userID takes part in the conversation
func (c *Conversation) HasParticipant(userID int64) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// Message is one persisted chat message inside a conversation
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	Content        string    `json:"content" db:"content"`
	IsBroadcast    bool      `json:"isBroadcast" db:"is_broadcast"` // Fanned out by an admin broadcast
	ReadAt         *time.Time `json:"readAt,omitempty" db:"read_at"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	Sender *User `json:"sender,omitempty"`
}
