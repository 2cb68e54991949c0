package habit

import (
	"github.com/Dias221467/Habit_Manager/internal/models"
)

// Evaluate runs the fixed achievement predicate set over the user's habit
// collection. Achievements are never persisted: every call recomputes them
// from the live snapshot, so an achievement disappears again if the streak
// behind it resets.
func Evaluate(habits []models.Habit) []models.Achievement {
	anyStreakAtLeast := func(n int) bool {
		for i := range habits {
			if habits[i].Streak >= n {
				return true
			}
		}
		return false
	}

	countStreakAtLeast := func(n int) int {
		count := 0
		for i := range habits {
			if habits[i].Streak >= n {
				count++
			}
		}
		return count
	}

	timeOfDayStreak := func(timeOfDay string, n int) bool {
		for i := range habits {
			if habits[i].TimeOfDay == timeOfDay && habits[i].Streak >= n {
				return true
			}
		}
		return false
	}

	perfectWeek := func() bool {
		activeCount := 0
		totalCompletions := 0
		for i := range habits {
			if habits[i].Status == models.HabitStatusActive {
				activeCount++
				totalCompletions += habits[i].TotalCompletions
			}
		}
		return activeCount > 0 && totalCompletions >= activeCount*7
	}

	return []models.Achievement{
		{
			Title:       "7-Day Streak",
			Icon:        "flame",
			Description: "Maintain a habit for 7 consecutive days",
			Achieved:    anyStreakAtLeast(7),
		},
		{
			Title:       "21-Day Milestone",
			Icon:        "badge",
			Description: "Reach the habit-forming milestone",
			Achieved:    anyStreakAtLeast(21),
		},
		{
			Title:       "Perfect Week",
			Icon:        "star",
			Description: "Complete all habits for a full week",
			Achieved:    perfectWeek(),
		},
		{
			Title:       "Habit Master",
			Icon:        "academic-cap",
			Description: "Maintain 5 habits for 30+ days",
			Achieved:    countStreakAtLeast(30) >= 5,
		},
		{
			Title:       "Early Bird",
			Icon:        "sun",
			Description: "Complete morning habits consistently",
			Achieved:    timeOfDayStreak("morning", 7),
		},
		{
			Title:       "Night Owl",
			Icon:        "moon",
			Description: "Complete evening habits consistently",
			Achieved:    timeOfDayStreak("evening", 7),
		},
	}
}
