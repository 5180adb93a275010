package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-api/internal/models"
)

// ActivityRepositoryInterface defines the interface for activity log operations
// This interface enables better testability by allowing mock implementations
type ActivityRepositoryInterface interface {
	Create(ctx context.Context, activity *models.ActivityRecord) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.ActivityRecord, error)
	HasActivityOnDay(ctx context.Context, userID uuid.UUID, activityType models.ActivityType, day time.Time) (bool, error)
}

// ChatSessionRepositoryInterface defines the interface for chat session operations
type ChatSessionRepositoryInterface interface {
	Create(ctx context.Context, session *models.ChatSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.ChatSession, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	Touch(ctx context.Context, id uuid.UUID) error
}

// ChatMessageRepositoryInterface defines the interface for chat message operations
type ChatMessageRepositoryInterface interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	ListBySessionID(ctx context.Context, sessionID uuid.UUID) ([]models.ChatMessage, error)
	ListRecentBySessionID(ctx context.Context, sessionID uuid.UUID, n int) ([]models.ChatMessage, error)
}

// JournalRepositoryInterface defines the interface for journal entry operations
type JournalRepositoryInterface interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.JournalEntry, error)
}

// UserRepositoryInterface defines the interface for user operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByProviderID(ctx context.Context, providerID string) (*models.User, error)
}

// Ensure concrete types implement the interfaces
var (
	_ ActivityRepositoryInterface    = (*ActivityRepository)(nil)
	_ ChatSessionRepositoryInterface = (*ChatSessionRepository)(nil)
	_ ChatMessageRepositoryInterface = (*ChatMessageRepository)(nil)
	_ JournalRepositoryInterface     = (*JournalRepository)(nil)
	_ UserRepositoryInterface        = (*UserRepository)(nil)
)
