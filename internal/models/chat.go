package models

import (
	"time"

	"github.com/google/uuid"
)

// TherapyType represents the conversational modality of a chat session
type TherapyType string

const (
	TherapyCBT             TherapyType = "cbt"
	TherapyDBT             TherapyType = "dbt"
	TherapyMindfulness     TherapyType = "mindfulness"
	TherapySolutionFocused TherapyType = "solution_focused"
	TherapyGeneral         TherapyType = "general"
)

// MessageType distinguishes user turns from AI turns within a session
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageAI   MessageType = "ai"
)

// ChatSession is one conversation between a user and the AI therapist.
// UpdatedAt is bumped on every message append so session lists sort by recency.
type ChatSession struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Title       string      `json:"title"`
	TherapyType TherapyType `json:"therapy_type"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ChatMessage is one turn within a session. Within a session, created_at is
// monotonically non-decreasing in append order; display order is append order.
type ChatMessage struct {
	ID        uuid.UUID   `json:"id"`
	SessionID uuid.UUID   `json:"session_id"`
	UserID    uuid.UUID   `json:"user_id"`
	Type      MessageType `json:"message_type"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}
