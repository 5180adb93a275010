package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("therapy_type", validateTherapyType); err != nil {
		panic(fmt.Sprintf("failed to register therapy_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("activity_type", validateActivityType); err != nil {
		panic(fmt.Sprintf("failed to register activity_type validator: %v", err))
	}
}

// validateTherapyType validates that a string is a valid TherapyType enum value
func validateTherapyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.TherapyType(value) {
	case models.TherapyCBT, models.TherapyDBT, models.TherapyMindfulness, models.TherapySolutionFocused, models.TherapyGeneral:
		return true
	default:
		return false
	}
}

// validateActivityType validates that a string is a valid ActivityType enum value
func validateActivityType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.ActivityType(value) {
	case models.ActivityTherapySession, models.ActivityJournalEntry, models.ActivityMeditation, models.ActivityWellness, models.ActivityLogin:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateTherapyType validates a TherapyType string value
func ValidateTherapyType(value string) error {
	tt := models.TherapyType(value)
	switch tt {
	case models.TherapyCBT, models.TherapyDBT, models.TherapyMindfulness, models.TherapySolutionFocused, models.TherapyGeneral:
		return nil
	default:
		return fmt.Errorf("invalid therapy_type: %s (must be 'cbt', 'dbt', 'mindfulness', 'solution_focused', or 'general')", value)
	}
}

// ValidateActivityType validates an ActivityType string value
func ValidateActivityType(value string) error {
	at := models.ActivityType(value)
	switch at {
	case models.ActivityTherapySession, models.ActivityJournalEntry, models.ActivityMeditation, models.ActivityWellness, models.ActivityLogin:
		return nil
	default:
		return fmt.Errorf("invalid activity_type: %s (must be 'therapy_session', 'journal_entry', 'meditation', 'wellness_activity', or 'login')", value)
	}
}

// ValidateMoodRating validates an optional 1-10 mood rating
func ValidateMoodRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < models.MoodRatingMin || *rating > models.MoodRatingMax {
		return fmt.Errorf("invalid mood_rating: %d (must be between %d and %d)", *rating, models.MoodRatingMin, models.MoodRatingMax)
	}
	return nil
}
