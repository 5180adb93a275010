package models

// Weekly goal targets for the rolling 7-day window
const (
	WeeklyTherapyTarget    = 5
	WeeklyJournalTarget    = 3
	WeeklyMeditationTarget = 60 // minutes
	WeeklyPracticeTarget   = 7  // distinct active days
)

// Achievement thresholds, re-derived on every snapshot computation
const (
	StreakAchievementDays     = 7
	MindfulWriterEntries      = 20
	ZenMasterSessions         = 10
	ProgressPioneerDays       = 30
	WellnessWarriorActivities = 50
)

// GoalProgress is a current/target pair for one weekly goal
type GoalProgress struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// WeeklyGoals groups progress against the fixed weekly targets
type WeeklyGoals struct {
	TherapySessions   GoalProgress `json:"therapy_sessions"`
	JournalEntries    GoalProgress `json:"journal_entries"`
	MeditationMinutes GoalProgress `json:"meditation_minutes"`
	DailyPractice     GoalProgress `json:"daily_practice"`
}

// MoodPoint is one day of the 7-point mood trend. Mood is the average of
// that day's rated activities rounded to one decimal, or 0 when no activity
// that day carried a rating.
type MoodPoint struct {
	Date     string  `json:"date"` // RFC 3339 date, local midnight
	Mood     float64 `json:"mood"`
	Sessions int     `json:"sessions"`
}

// Achievements holds the five independent achievement flags
type Achievements struct {
	SevenDayStreak  bool `json:"seven_day_streak"`
	MindfulWriter   bool `json:"mindful_writer"`
	ZenMaster       bool `json:"zen_master"`
	ProgressPioneer bool `json:"progress_pioneer"`
	WellnessWarrior bool `json:"wellness_warrior"`
}

// ProgressSnapshot is the derived dashboard view over a user's activity log.
// It is computed on demand and never persisted; plain data, no behavior.
type ProgressSnapshot struct {
	TotalSessions     int          `json:"total_sessions"`
	JournalEntries    int          `json:"journal_entries"`
	MeditationMinutes int          `json:"meditation_minutes"`
	StreakDays        int          `json:"streak_days"`
	WeeklyGoals       WeeklyGoals  `json:"weekly_goals"`
	MoodTrend         []MoodPoint  `json:"mood_trend"`
	Achievements      Achievements `json:"achievements"`
}
