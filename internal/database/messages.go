package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-api/internal/models"
)

// ChatMessageRepository handles chat message database operations
type ChatMessageRepository struct {
	db *DB
}

// NewChatMessageRepository creates a new chat message repository
func NewChatMessageRepository(db *DB) *ChatMessageRepository {
	return &ChatMessageRepository{db: db}
}

// Create appends a message to a session
func (r *ChatMessageRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, session_id, user_id, message_type, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		message.ID,
		message.SessionID,
		message.UserID,
		message.Type,
		message.Content,
		time.Now(),
	).Scan(&message.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

// ListBySessionID retrieves a session's messages in conversation order
func (r *ChatMessageRepository) ListBySessionID(ctx context.Context, sessionID uuid.UUID) ([]models.ChatMessage, error) {
	query := `
		SELECT id, session_id, user_id, message_type, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.UserID, &m.Type, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}

	return messages, nil
}

// ListRecentBySessionID retrieves the last n messages in conversation order
func (r *ChatMessageRepository) ListRecentBySessionID(ctx context.Context, sessionID uuid.UUID, n int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, session_id, user_id, message_type, content, created_at
		FROM (
			SELECT id, session_id, user_id, message_type, content, created_at
			FROM chat_messages
			WHERE session_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent chat messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.UserID, &m.Type, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}

	return messages, nil
}
