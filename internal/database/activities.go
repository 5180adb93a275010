package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-api/internal/models"
)

// ActivityRepository handles activity log database operations. The log is
// append-only; records are never updated after insert.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends a new activity record
func (r *ActivityRepository) Create(ctx context.Context, activity *models.ActivityRecord) error {
	query := `
		INSERT INTO user_activities (id, user_id, activity_type, duration_minutes, mood_rating, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	createdAt := activity.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err := r.db.QueryRowContext(ctx, query,
		activity.ID,
		activity.UserID,
		activity.Type,
		activity.DurationMinutes,
		activity.MoodRating,
		activity.Notes,
		createdAt,
	).Scan(&activity.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// ListByUserID retrieves a user's full activity log, newest first
func (r *ActivityRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.ActivityRecord, error) {
	query := `
		SELECT id, user_id, activity_type, duration_minutes, mood_rating, notes, created_at
		FROM user_activities
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var activities []models.ActivityRecord
	for rows.Next() {
		var a models.ActivityRecord
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Type,
			&a.DurationMinutes,
			&a.MoodRating,
			&a.Notes,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, nil
}

// HasActivityOnDay reports whether the user logged any activity within the
// given calendar day. Used to avoid duplicate daily login records.
func (r *ActivityRepository) HasActivityOnDay(ctx context.Context, userID uuid.UUID, activityType models.ActivityType, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_activities
			WHERE user_id = $1 AND activity_type = $2 AND created_at >= $3 AND created_at < $4
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, activityType, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check daily activity: %w", err)
	}

	return exists, nil
}
