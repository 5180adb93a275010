package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType represents the kind of wellness action an activity record logs
type ActivityType string

const (
	ActivityTherapySession ActivityType = "therapy_session"
	ActivityJournalEntry   ActivityType = "journal_entry"
	ActivityMeditation     ActivityType = "meditation"
	ActivityWellness       ActivityType = "wellness_activity"
	ActivityLogin          ActivityType = "login"
)

// MoodRatingMin and MoodRatingMax bound the mood scale on activity records
const (
	MoodRatingMin = 1
	MoodRatingMax = 10
)

// ActivityRecord is one immutable entry in a user's activity log.
// Records are append-only: created when the user completes an action,
// read by the progress aggregator, never updated or deleted.
type ActivityRecord struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"user_id"`
	Type            ActivityType `json:"activity_type"`
	DurationMinutes *int         `json:"duration_minutes,omitempty"`
	MoodRating      *int         `json:"mood_rating,omitempty"`
	Notes           *string      `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// HasMoodRating reports whether the record carries a mood rating
func (a *ActivityRecord) HasMoodRating() bool {
	return a.MoodRating != nil
}

// Minutes returns the recorded duration, or 0 when none was recorded
func (a *ActivityRecord) Minutes() int {
	if a.DurationMinutes == nil {
		return 0
	}
	return *a.DurationMinutes
}
