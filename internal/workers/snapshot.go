package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/queue"
	"github.com/mindhaven/mindhaven-api/internal/services/ai"
	"github.com/mindhaven/mindhaven-api/internal/services/progress"
)

// SnapshotStore is the cache surface the worker writes snapshots to
type SnapshotStore interface {
	Set(ctx context.Context, userID uuid.UUID, snapshot *models.ProgressSnapshot) error
}

// SnapshotWorker processes background jobs: progress snapshot refreshes and
// chat session title summaries.
type SnapshotWorker struct {
	activityRepo database.ActivityRepositoryInterface
	sessionRepo  database.ChatSessionRepositoryInterface
	messageRepo  database.ChatMessageRepositoryInterface
	snapshots    SnapshotStore
	aiProvider   ai.Provider
}

// NewSnapshotWorker creates a new snapshot worker
func NewSnapshotWorker(
	activityRepo database.ActivityRepositoryInterface,
	sessionRepo database.ChatSessionRepositoryInterface,
	messageRepo database.ChatMessageRepositoryInterface,
	snapshots SnapshotStore,
	aiProvider ai.Provider,
) *SnapshotWorker {
	return &SnapshotWorker{
		activityRepo: activityRepo,
		sessionRepo:  sessionRepo,
		messageRepo:  messageRepo,
		snapshots:    snapshots,
		aiProvider:   aiProvider,
	}
}

// ProcessJob dispatches a job to its handler
func (w *SnapshotWorker) ProcessJob(ctx context.Context, job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeSnapshotRefresh:
		return w.processSnapshotRefresh(ctx, job)
	case queue.JobTypeSessionSummary:
		return w.processSessionSummary(ctx, job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// processSnapshotRefresh recomputes a user's progress snapshot and caches it
func (w *SnapshotWorker) processSnapshotRefresh(ctx context.Context, job *queue.Job) error {
	activities, err := w.activityRepo.ListByUserID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}

	snapshot := progress.ComputeStats(activities, time.Now())
	if err := w.snapshots.Set(ctx, job.UserID, &snapshot); err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}

	log.Printf("Refreshed progress snapshot for user %s (%d activities)", job.UserID, len(activities))
	return nil
}

// processSessionSummary generates a short title for a chat session. Title
// generation is best effort; a session keeps its default title on failure.
func (w *SnapshotWorker) processSessionSummary(ctx context.Context, job *queue.Job) error {
	if job.SessionID == nil {
		return fmt.Errorf("session_id is required for session summary job")
	}
	if w.aiProvider == nil {
		log.Printf("Skipping session summary for %s (no AI provider configured)", *job.SessionID)
		return nil
	}

	session, err := w.sessionRepo.GetByID(ctx, *job.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session.UserID != job.UserID {
		return fmt.Errorf("session does not belong to user")
	}

	messages, err := w.messageRepo.ListRecentBySessionID(ctx, session.ID, 6)
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}
	if len(messages) == 0 {
		log.Printf("Skipping session summary for %s (no messages)", session.ID)
		return nil
	}

	conversation := make([]ai.ChatMessage, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Type == models.MessageAI {
			role = "assistant"
		}
		conversation = append(conversation, ai.ChatMessage{Role: role, Content: m.Content})
	}

	title, err := w.aiProvider.Summarize(ctx, conversation)
	if err != nil {
		return fmt.Errorf("failed to summarize session: %w", err)
	}
	if title == "" {
		log.Printf("Empty summary for session %s, keeping existing title", session.ID)
		return nil
	}

	if err := w.sessionRepo.UpdateTitle(ctx, session.ID, title); err != nil {
		return fmt.Errorf("failed to update session title: %w", err)
	}

	log.Printf("Updated title for session %s", session.ID)
	return nil
}
