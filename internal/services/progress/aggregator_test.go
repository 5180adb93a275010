package progress

import (
	"testing"
	"time"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

// fixedNow anchors every test at a known local time
var fixedNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func record(t models.ActivityType, createdAt time.Time) models.ActivityRecord {
	return models.ActivityRecord{Type: t, CreatedAt: createdAt}
}

func recordWithDuration(t models.ActivityType, createdAt time.Time, minutes int) models.ActivityRecord {
	r := record(t, createdAt)
	r.DurationMinutes = &minutes
	return r
}

func recordWithMood(t models.ActivityType, createdAt time.Time, mood int) models.ActivityRecord {
	r := record(t, createdAt)
	r.MoodRating = &mood
	return r
}

func TestComputeStats_Totals(t *testing.T) {
	t.Parallel()

	activities := []models.ActivityRecord{
		record(models.ActivityTherapySession, fixedNow.Add(-1*time.Hour)),
		record(models.ActivityTherapySession, fixedNow.AddDate(0, 0, -10)),
		record(models.ActivityJournalEntry, fixedNow.Add(-2*time.Hour)),
		recordWithDuration(models.ActivityMeditation, fixedNow.Add(-3*time.Hour), 20),
		recordWithDuration(models.ActivityMeditation, fixedNow.AddDate(0, 0, -20), 15),
		record(models.ActivityMeditation, fixedNow.AddDate(0, 0, -21)), // no duration
		record(models.ActivityLogin, fixedNow.Add(-4*time.Hour)),
	}

	got := ComputeStats(activities, fixedNow)
	if got.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d, want 2", got.TotalSessions)
	}
	if got.JournalEntries != 1 {
		t.Errorf("JournalEntries = %d, want 1", got.JournalEntries)
	}
	if got.MeditationMinutes != 35 {
		t.Errorf("MeditationMinutes = %d, want 35", got.MeditationMinutes)
	}
}

func TestCalculateStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		activities []models.ActivityRecord
		want       int
	}{
		{
			name: "three consecutive days",
			activities: []models.ActivityRecord{
				record(models.ActivityJournalEntry, fixedNow),
				record(models.ActivityMeditation, fixedNow.AddDate(0, 0, -1)),
				record(models.ActivityTherapySession, fixedNow.AddDate(0, 0, -2)),
			},
			want: 3,
		},
		{
			name: "gap yesterday breaks the chain",
			activities: []models.ActivityRecord{
				record(models.ActivityJournalEntry, fixedNow),
				record(models.ActivityTherapySession, fixedNow.AddDate(0, 0, -2)),
			},
			want: 1,
		},
		{
			name: "no activity today gives zero",
			activities: []models.ActivityRecord{
				record(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -1)),
				record(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -2)),
			},
			want: 0,
		},
		{
			name: "multiple records on one day count once",
			activities: []models.ActivityRecord{
				record(models.ActivityJournalEntry, fixedNow),
				record(models.ActivityMeditation, fixedNow.Add(-5*time.Hour)),
				record(models.ActivityTherapySession, fixedNow.AddDate(0, 0, -1)),
			},
			want: 2,
		},
		{
			name:       "empty log",
			activities: nil,
			want:       0,
		},
		{
			name: "activity type does not matter",
			activities: []models.ActivityRecord{
				record(models.ActivityLogin, fixedNow),
				record(models.ActivityWellness, fixedNow.AddDate(0, 0, -1)),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := calculateStreak(tt.activities, fixedNow); got != tt.want {
				t.Errorf("calculateStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeeklyGoals_Window(t *testing.T) {
	t.Parallel()

	activities := []models.ActivityRecord{
		// 6 days 23 hours ago, inside the window
		record(models.ActivityTherapySession, fixedNow.Add(-(6*24+23)*time.Hour)),
		// exactly 8 days ago, outside
		record(models.ActivityTherapySession, fixedNow.AddDate(0, 0, -8)),
		record(models.ActivityJournalEntry, fixedNow.Add(-1*time.Hour)),
		recordWithDuration(models.ActivityMeditation, fixedNow.Add(-2*time.Hour), 25),
		recordWithDuration(models.ActivityMeditation, fixedNow.AddDate(0, 0, -9), 40),
	}

	goals := weeklyGoals(activities, fixedNow)
	if goals.TherapySessions.Current != 1 {
		t.Errorf("TherapySessions.Current = %d, want 1", goals.TherapySessions.Current)
	}
	if goals.JournalEntries.Current != 1 {
		t.Errorf("JournalEntries.Current = %d, want 1", goals.JournalEntries.Current)
	}
	if goals.MeditationMinutes.Current != 25 {
		t.Errorf("MeditationMinutes.Current = %d, want 25", goals.MeditationMinutes.Current)
	}
	if goals.TherapySessions.Target != models.WeeklyTherapyTarget {
		t.Errorf("TherapySessions.Target = %d, want %d", goals.TherapySessions.Target, models.WeeklyTherapyTarget)
	}
}

func TestWeeklyGoals_DailyPracticeCountsDistinctDays(t *testing.T) {
	t.Parallel()

	activities := []models.ActivityRecord{
		record(models.ActivityJournalEntry, fixedNow),
		record(models.ActivityMeditation, fixedNow.Add(-3*time.Hour)),
		record(models.ActivityTherapySession, fixedNow.AddDate(0, 0, -2)),
		record(models.ActivityWellness, fixedNow.AddDate(0, 0, -3)),
	}

	goals := weeklyGoals(activities, fixedNow)
	if goals.DailyPractice.Current != 3 {
		t.Errorf("DailyPractice.Current = %d, want 3", goals.DailyPractice.Current)
	}
}

func TestWeeklyGoals_DailyPracticeCapsAtSevenCalendarDays(t *testing.T) {
	t.Parallel()

	// A mid-day now means the rolling window clips two partial days, one at
	// each end. Only the last seven calendar dates count toward practice.
	activities := make([]models.ActivityRecord, 0, 8)
	for i := 0; i < 7; i++ {
		activities = append(activities, record(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -i)))
	}
	// Seven days back but one hour inside the rolling window: an eighth
	// calendar date that must not count.
	activities = append(activities, record(models.ActivityJournalEntry, fixedNow.Add(-7*24*time.Hour+time.Hour)))

	goals := weeklyGoals(activities, fixedNow)
	if goals.DailyPractice.Current != models.WeeklyPracticeTarget {
		t.Errorf("DailyPractice.Current = %d, want %d", goals.DailyPractice.Current, models.WeeklyPracticeTarget)
	}
	if goals.JournalEntries.Current != 8 {
		t.Errorf("JournalEntries.Current = %d, want 8", goals.JournalEntries.Current)
	}
}

func TestWeeklyGoals_WindowStartInclusive(t *testing.T) {
	t.Parallel()

	activities := []models.ActivityRecord{
		record(models.ActivityTherapySession, fixedNow.AddDate(0, 0, -7)),
	}

	goals := weeklyGoals(activities, fixedNow)
	if goals.TherapySessions.Current != 1 {
		t.Errorf("TherapySessions.Current = %d, want 1", goals.TherapySessions.Current)
	}
}

func TestMoodTrend(t *testing.T) {
	t.Parallel()

	activities := []models.ActivityRecord{
		// two rated activities today: average of 4 and 8 is 6.0
		recordWithMood(models.ActivityJournalEntry, fixedNow.Add(-1*time.Hour), 4),
		recordWithMood(models.ActivityTherapySession, fixedNow.Add(-2*time.Hour), 8),
		// yesterday: one rating of 7 plus an unrated record that must not drag the average
		recordWithMood(models.ActivityMeditation, fixedNow.AddDate(0, 0, -1), 7),
		record(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -1)),
		// three ratings six days ago exercising the rounding rule
		recordWithMood(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -6), 5),
		recordWithMood(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -6).Add(time.Hour), 6),
		recordWithMood(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -6).Add(2*time.Hour), 6),
		// outside the 7-day trend entirely
		recordWithMood(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -10), 2),
	}

	trend := moodTrend(activities, fixedNow)
	if len(trend) != 7 {
		t.Fatalf("trend length = %d, want 7", len(trend))
	}

	// oldest first
	if trend[0].Date != "2025-06-09" {
		t.Errorf("trend[0].Date = %q, want 2025-06-09", trend[0].Date)
	}
	if trend[6].Date != "2025-06-15" {
		t.Errorf("trend[6].Date = %q, want 2025-06-15", trend[6].Date)
	}

	if trend[6].Mood != 6.0 {
		t.Errorf("today's mood = %v, want 6.0", trend[6].Mood)
	}
	if trend[6].Sessions != 1 {
		t.Errorf("today's sessions = %d, want 1", trend[6].Sessions)
	}
	if trend[5].Mood != 7.0 {
		t.Errorf("yesterday's mood = %v, want 7.0", trend[5].Mood)
	}
	// (5+6+6)/3 = 5.666..., rounded to one decimal
	if trend[0].Mood != 5.7 {
		t.Errorf("oldest day mood = %v, want 5.7", trend[0].Mood)
	}
	// a day with no ratings reports zero
	if trend[3].Mood != 0 {
		t.Errorf("unrated day mood = %v, want 0", trend[3].Mood)
	}
}

func TestAchievements_Boundaries(t *testing.T) {
	t.Parallel()

	journalActivities := func(n int) []models.ActivityRecord {
		var out []models.ActivityRecord
		for i := 0; i < n; i++ {
			out = append(out, record(models.ActivityJournalEntry, fixedNow.Add(-time.Duration(i)*time.Minute)))
		}
		return out
	}

	t.Run("mindful writer strict boundary", func(t *testing.T) {
		t.Parallel()

		if got := ComputeStats(journalActivities(19), fixedNow); got.Achievements.MindfulWriter {
			t.Error("19 journal entries should not earn mindful writer")
		}
		if got := ComputeStats(journalActivities(20), fixedNow); !got.Achievements.MindfulWriter {
			t.Error("20 journal entries should earn mindful writer")
		}
	})

	t.Run("seven day streak", func(t *testing.T) {
		t.Parallel()

		var activities []models.ActivityRecord
		for i := 0; i < 7; i++ {
			activities = append(activities, record(models.ActivityMeditation, fixedNow.AddDate(0, 0, -i)))
		}
		got := ComputeStats(activities, fixedNow)
		if !got.Achievements.SevenDayStreak {
			t.Error("7 consecutive days should earn the streak achievement")
		}

		got = ComputeStats(activities[:6], fixedNow)
		if got.Achievements.SevenDayStreak {
			t.Error("6 consecutive days should not earn the streak achievement")
		}
	})

	t.Run("zen master counts meditation records", func(t *testing.T) {
		t.Parallel()

		var activities []models.ActivityRecord
		for i := 0; i < 10; i++ {
			activities = append(activities, record(models.ActivityMeditation, fixedNow.Add(-time.Duration(i)*time.Hour)))
		}
		if got := ComputeStats(activities, fixedNow); !got.Achievements.ZenMaster {
			t.Error("10 meditations should earn zen master")
		}
		if got := ComputeStats(activities[:9], fixedNow); got.Achievements.ZenMaster {
			t.Error("9 meditations should not earn zen master")
		}
	})

	t.Run("progress pioneer requires an old record", func(t *testing.T) {
		t.Parallel()

		recent := []models.ActivityRecord{record(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -29))}
		if got := ComputeStats(recent, fixedNow); got.Achievements.ProgressPioneer {
			t.Error("29-day-old record should not earn progress pioneer")
		}

		old := []models.ActivityRecord{record(models.ActivityJournalEntry, fixedNow.AddDate(0, 0, -31))}
		if got := ComputeStats(old, fixedNow); !got.Achievements.ProgressPioneer {
			t.Error("31-day-old record should earn progress pioneer")
		}
	})

	t.Run("wellness warrior", func(t *testing.T) {
		t.Parallel()

		var activities []models.ActivityRecord
		for i := 0; i < 50; i++ {
			activities = append(activities, record(models.ActivityWellness, fixedNow.Add(-time.Duration(i)*time.Hour)))
		}
		if got := ComputeStats(activities, fixedNow); !got.Achievements.WellnessWarrior {
			t.Error("50 wellness activities should earn wellness warrior")
		}
		if got := ComputeStats(activities[:49], fixedNow); got.Achievements.WellnessWarrior {
			t.Error("49 wellness activities should not earn wellness warrior")
		}
	})
}

func TestComputeStats_EndToEnd(t *testing.T) {
	t.Parallel()

	activities := []models.ActivityRecord{
		recordWithDuration(models.ActivityMeditation, fixedNow.Add(-1*time.Hour), 20),
		record(models.ActivityJournalEntry, fixedNow.Add(-2*time.Hour)),
		record(models.ActivityTherapySession, fixedNow.AddDate(0, 0, -3)),
	}

	got := ComputeStats(activities, fixedNow)
	if got.MeditationMinutes != 20 {
		t.Errorf("MeditationMinutes = %d, want 20", got.MeditationMinutes)
	}
	if got.JournalEntries != 1 {
		t.Errorf("JournalEntries = %d, want 1", got.JournalEntries)
	}
	if got.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", got.TotalSessions)
	}
	// today has activity but yesterday does not, so the walk stops at 1
	if got.StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", got.StreakDays)
	}
}

func TestEmptyStats(t *testing.T) {
	t.Parallel()

	got := EmptyStats()
	if got.TotalSessions != 0 || got.JournalEntries != 0 || got.MeditationMinutes != 0 || got.StreakDays != 0 {
		t.Errorf("EmptyStats counters not zero: %+v", got)
	}
	if got.MoodTrend == nil || len(got.MoodTrend) != 0 {
		t.Errorf("EmptyStats().MoodTrend = %v, want empty non-nil slice", got.MoodTrend)
	}
	if got.WeeklyGoals.TherapySessions.Target != models.WeeklyTherapyTarget {
		t.Errorf("weekly target missing from empty snapshot")
	}
	if got.Achievements != (models.Achievements{}) {
		t.Errorf("EmptyStats().Achievements = %+v, want all false", got.Achievements)
	}
}
