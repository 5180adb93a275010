package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-api/internal/models"
)

// ChatSessionRepository handles chat session database operations
type ChatSessionRepository struct {
	db *DB
}

// NewChatSessionRepository creates a new chat session repository
func NewChatSessionRepository(db *DB) *ChatSessionRepository {
	return &ChatSessionRepository{db: db}
}

// Create creates a new chat session
func (r *ChatSessionRepository) Create(ctx context.Context, session *models.ChatSession) error {
	query := `
		INSERT INTO chat_sessions (id, user_id, title, therapy_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()

	err := r.db.QueryRowContext(ctx, query,
		session.ID,
		session.UserID,
		session.Title,
		session.TherapyType,
		now,
		now,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	return nil
}

// GetByID retrieves a chat session by ID
func (r *ChatSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	session := &models.ChatSession{}
	query := `
		SELECT id, user_id, title, therapy_type, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.TherapyType,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chat session not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	return session, nil
}

// ListByUserID retrieves a user's chat sessions, most recently updated first
func (r *ChatSessionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.ChatSession, error) {
	query := `
		SELECT id, user_id, title, therapy_type, created_at, updated_at
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.ChatSession
	for rows.Next() {
		var s models.ChatSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.TherapyType, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat sessions: %w", err)
	}

	return sessions, nil
}

// UpdateTitle sets a session's title and bumps its updated_at
func (r *ChatSessionRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	query := `
		UPDATE chat_sessions
		SET title = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, title, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update chat session title: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("chat session not found")
	}

	return nil
}

// Touch bumps a session's updated_at so recently active sessions sort first
func (r *ChatSessionRepository) Touch(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE chat_sessions SET updated_at = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, time.Now()); err != nil {
		return fmt.Errorf("failed to touch chat session: %w", err)
	}

	return nil
}
