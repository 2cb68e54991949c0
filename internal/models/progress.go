package models

// ProgressBucket is one slot of a weekly or monthly progress view,
// computed on demand and never persisted.
type ProgressBucket struct {
	Label     string `json:"label"`
	Completed int    `json:"completed"`
	Target    int    `json:"target"`
	Month     int    `json:"month,omitempty"` // monthly view only, time.Month as int
	Year      int    `json:"year,omitempty"`  // monthly view only
}

// StreakEntry is a single row of the ranked current-streak list.
type StreakEntry struct {
	HabitID   string `json:"habit_id"`
	HabitName string `json:"habit"`
	Current   int    `json:"current"`
	Longest   int    `json:"longest"`
}

// DistributionEntry is a per-habit completion rate over a trailing window.
type DistributionEntry struct {
	Name        string `json:"name"`
	Rate        int    `json:"value"` // percentage, capped at 100
	Completions int    `json:"completions"`
	Target      int    `json:"target"`
	Color       string `json:"color"`
}

// Achievement is a named predicate over the user's habit collection,
// recomputed live on every request.
type Achievement struct {
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Achieved    bool   `json:"achieved"`
}

// HabitStats summarizes a user's habit collection for the dashboard.
type HabitStats struct {
	TotalHabits      int           `json:"total_habits"`
	ActiveHabits     int           `json:"active_habits"`
	CompletedToday   int           `json:"completed_today"`
	TotalCompletions int           `json:"total_completions"`
	LongestStreak    int           `json:"longest_streak"`
	CurrentStreaks   []StreakEntry `json:"current_streaks"`
}

// WeeklyReport is the weekly progress view with its overall completion rate.
type WeeklyReport struct {
	Days           []ProgressBucket `json:"weekly_data"`
	TotalTarget    int              `json:"total_target"`
	TotalCompleted int              `json:"total_completed"`
	CompletionRate int              `json:"completion_rate"`
}

// MonthlyReport is the monthly progress view with its overall completion rate.
type MonthlyReport struct {
	Months         []ProgressBucket `json:"monthly_data"`
	TotalTarget    int              `json:"total_target"`
	TotalCompleted int              `json:"total_completed"`
	CompletionRate int              `json:"completion_rate"`
}
