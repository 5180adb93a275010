// Package progress derives dashboard statistics from a user's activity log.
// All computation is pure over the supplied records and reference time, so
// results are reproducible and callers control the clock in tests.
package progress

import (
	"math"
	"time"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

const moodTrendDays = 7

// EmptyStats returns the all-zero snapshot used whenever the activity log
// cannot be read. The dashboard always renders something.
func EmptyStats() models.ProgressSnapshot {
	return models.ProgressSnapshot{
		WeeklyGoals: models.WeeklyGoals{
			TherapySessions:   models.GoalProgress{Target: models.WeeklyTherapyTarget},
			JournalEntries:    models.GoalProgress{Target: models.WeeklyJournalTarget},
			MeditationMinutes: models.GoalProgress{Target: models.WeeklyMeditationTarget},
			DailyPractice:     models.GoalProgress{Target: models.WeeklyPracticeTarget},
		},
		MoodTrend: []models.MoodPoint{},
	}
}

// ComputeStats aggregates the full snapshot from a user's activity records.
// The records may arrive in any order. now anchors "today" for streaks,
// weekly windows, and the mood trend.
func ComputeStats(activities []models.ActivityRecord, now time.Time) models.ProgressSnapshot {
	snapshot := EmptyStats()

	for _, a := range activities {
		switch a.Type {
		case models.ActivityTherapySession:
			snapshot.TotalSessions++
		case models.ActivityJournalEntry:
			snapshot.JournalEntries++
		case models.ActivityMeditation:
			snapshot.MeditationMinutes += a.Minutes()
		}
	}

	snapshot.StreakDays = calculateStreak(activities, now)
	snapshot.WeeklyGoals = weeklyGoals(activities, now)
	snapshot.MoodTrend = moodTrend(activities, now)
	snapshot.Achievements = achievements(activities, snapshot, now)

	return snapshot
}

// calculateStreak counts consecutive calendar days ending today that have
// at least one activity of any type. A day with no records stops the walk,
// so a quiet today yields zero.
func calculateStreak(activities []models.ActivityRecord, now time.Time) int {
	if len(activities) == 0 {
		return 0
	}

	days := make(map[time.Time]bool, len(activities))
	for _, a := range activities {
		days[truncateDay(a.CreatedAt)] = true
	}

	streak := 0
	for day := truncateDay(now); days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// weeklyGoals tallies progress inside the rolling window [now-7d, now],
// inclusive at both ends. Daily practice counts distinct calendar days over
// the last seven dates including today, so it can never exceed its target.
// Current values for the other goals may exceed theirs; clamping is a
// display concern.
func weeklyGoals(activities []models.ActivityRecord, now time.Time) models.WeeklyGoals {
	weekAgo := now.AddDate(0, 0, -7)
	firstPracticeDay := truncateDay(now).AddDate(0, 0, -6)
	goals := EmptyStats().WeeklyGoals

	activeDays := make(map[time.Time]bool)
	for _, a := range activities {
		if a.CreatedAt.Before(weekAgo) || a.CreatedAt.After(now) {
			continue
		}
		switch a.Type {
		case models.ActivityTherapySession:
			goals.TherapySessions.Current++
		case models.ActivityJournalEntry:
			goals.JournalEntries.Current++
		case models.ActivityMeditation:
			goals.MeditationMinutes.Current += a.Minutes()
		}
		if day := truncateDay(a.CreatedAt); !day.Before(firstPracticeDay) {
			activeDays[day] = true
		}
	}
	goals.DailyPractice.Current = len(activeDays)

	return goals
}

// moodTrend produces one point per calendar day for the trailing week,
// oldest first. Days with no rated activities report a zero mood; rated
// averages are rounded to one decimal place.
func moodTrend(activities []models.ActivityRecord, now time.Time) []models.MoodPoint {
	trend := make([]models.MoodPoint, 0, moodTrendDays)

	for i := moodTrendDays - 1; i >= 0; i-- {
		day := truncateDay(now.AddDate(0, 0, -i))
		next := day.AddDate(0, 0, 1)

		var moodSum, moodCount, sessions int
		for _, a := range activities {
			if a.CreatedAt.Before(day) || !a.CreatedAt.Before(next) {
				continue
			}
			if a.Type == models.ActivityTherapySession {
				sessions++
			}
			if a.HasMoodRating() {
				moodSum += *a.MoodRating
				moodCount++
			}
		}

		point := models.MoodPoint{
			Date:     day.Format("2006-01-02"),
			Sessions: sessions,
		}
		if moodCount > 0 {
			point.Mood = math.Round(float64(moodSum)/float64(moodCount)*10) / 10
		}
		trend = append(trend, point)
	}

	return trend
}

// achievements evaluates the fixed badge thresholds. All comparisons are
// inclusive at the threshold value.
func achievements(activities []models.ActivityRecord, snapshot models.ProgressSnapshot, now time.Time) models.Achievements {
	wellnessCount := 0
	monthAgo := now.AddDate(0, 0, -models.ProgressPioneerDays)
	pioneer := false
	for _, a := range activities {
		if a.Type == models.ActivityWellness {
			wellnessCount++
		}
		if !a.CreatedAt.After(monthAgo) {
			pioneer = true
		}
	}

	return models.Achievements{
		SevenDayStreak:  snapshot.StreakDays >= models.StreakAchievementDays,
		MindfulWriter:   snapshot.JournalEntries >= models.MindfulWriterEntries,
		ZenMaster:       countType(activities, models.ActivityMeditation) >= models.ZenMasterSessions,
		ProgressPioneer: pioneer,
		WellnessWarrior: wellnessCount >= models.WellnessWarriorActivities,
	}
}

func countType(activities []models.ActivityRecord, t models.ActivityType) int {
	n := 0
	for _, a := range activities {
		if a.Type == t {
			n++
		}
	}
	return n
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
