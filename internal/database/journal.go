package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-api/internal/models"
)

// JournalRepository handles journal entry database operations
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create creates a new journal entry
func (r *JournalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, user_id, title, content, mood_rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.MoodRating,
		time.Now(),
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

// GetByID retrieves a journal entry by ID
func (r *JournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error) {
	entry := &models.JournalEntry{}
	query := `
		SELECT id, user_id, title, content, mood_rating, created_at
		FROM journal_entries
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&entry.MoodRating,
		&entry.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("journal entry not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	return entry, nil
}

// ListByUserID retrieves a user's journal entries, newest first
func (r *JournalRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.JournalEntry, error) {
	query := `
		SELECT id, user_id, title, content, mood_rating, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.MoodRating, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}

	return entries, nil
}
