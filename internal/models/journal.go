package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a saved journal entry. Saving one also appends a
// journal_entry activity record so it counts toward progress stats.
type JournalEntry struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	MoodRating *int      `json:"mood_rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
