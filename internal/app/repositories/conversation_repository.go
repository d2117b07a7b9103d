package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/helpers"
)

// ConversationRepository handles database operations for direct messages
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// FindOrCreate returns the conversation between two users, creating it on
// first contact. The pair is stored with the lower ID first so the unique
// constraint holds regardless of who writes first.
func (r *ConversationRepository) FindOrCreate(ctx context.Context, userID, otherID int64) (*models.Conversation, error) {
	a, b := userID, otherID
	if a > b {
		a, b = b, a
	}

	query := `
		INSERT INTO conversations (user_a_id, user_b_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT conversations_pair_key
		DO UPDATE SET user_a_id = EXCLUDED.user_a_id
		RETURNING id, user_a_id, user_b_id, last_message_at, created_at
	`

	var conv models.Conversation
	err := r.db.QueryRow(ctx, query, a, b).
		Scan(&conv.ID, &conv.UserAID, &conv.UserBID, &conv.LastMessageAt, &conv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error finding conversation: %w", err)
	}

	return &conv, nil
}

// GetByID retrieves a conversation by ID
func (r *ConversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `
		SELECT id, user_a_id, user_b_id, last_message_at, created_at
		FROM conversations
		WHERE id = $1
	`

	var conv models.Conversation
	err := r.db.QueryRow(ctx, query, id).
		Scan(&conv.ID, &conv.UserAID, &conv.UserBID, &conv.LastMessageAt, &conv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	return &conv, nil
}

// ListForUser retrieves a user's conversations with partner info and unread
// counts, most recently active first
func (r *ConversationRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Conversation, map[int64]int, error) {
	query := `
		SELECT c.id, c.user_a_id, c.user_b_id, c.last_message_at, c.created_at,
		       (SELECT COUNT(*) FROM messages m
		        WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND m.read_at IS NULL)
		FROM conversations c
		WHERE c.user_a_id = $1 OR c.user_b_id = $1
		ORDER BY c.last_message_at DESC NULLS LAST, c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	unread := make(map[int64]int)

	for rows.Next() {
		var conv models.Conversation
		var unreadCount int
		err := rows.Scan(&conv.ID, &conv.UserAID, &conv.UserBID, &conv.LastMessageAt, &conv.CreatedAt, &unreadCount)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		unread[conv.ID] = unreadCount
		conversations = append(conversations, &conv)
	}

	return conversations, unread, rows.Err()
}

// AddMessage appends a message and bumps the conversation's activity stamp
func (r *ConversationRepository) AddMessage(ctx context.Context, message *models.Message) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content, is_broadcast)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		message.ConversationID, message.SenderID, message.Content, message.IsBroadcast).
		Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting message: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE conversations SET last_message_at = $1 WHERE id = $2`,
		message.CreatedAt, message.ConversationID)
	if err != nil {
		return fmt.Errorf("error updating conversation activity: %w", err)
	}

	return tx.Commit(ctx)
}

// GetMessages retrieves a conversation's messages, oldest first, paginated
func (r *ConversationRepository) GetMessages(ctx context.Context, conversationID int64, page, pageSize int) ([]*models.Message, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	query := `
		SELECT id, conversation_id, sender_id, content, is_broadcast, read_at, created_at,
		       COUNT(*) OVER()
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, conversationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	var total int64

	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.IsBroadcast, &m.ReadAt, &m.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &m)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, total, nil
}

// MarkRead stamps all of the partner's unread messages in a conversation
func (r *ConversationRepository) MarkRead(ctx context.Context, conversationID, readerID int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE messages
		SET read_at = $1
		WHERE conversation_id = $2 AND sender_id <> $3 AND read_at IS NULL`,
		at, conversationID, readerID)
	if err != nil {
		return fmt.Errorf("error marking messages read: %w", err)
	}
	return nil
}
