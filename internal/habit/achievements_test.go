package habit

import (
	"testing"

	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func achievementByTitle(t *testing.T, achievements []models.Achievement, title string) models.Achievement {
	t.Helper()
	for _, a := range achievements {
		if a.Title == title {
			return a
		}
	}
	t.Fatalf("achievement %q not found", title)
	return models.Achievement{}
}

func TestEvaluate_EmptyCollection(t *testing.T) {
	achievements := Evaluate(nil)
	require.Len(t, achievements, 6)
	for _, a := range achievements {
		assert.False(t, a.Achieved, a.Title)
	}
}

func TestEvaluate_StreakMilestones(t *testing.T) {
	habits := []models.Habit{
		{Name: "Read", Status: models.HabitStatusActive, Streak: 8},
	}

	achievements := Evaluate(habits)
	assert.True(t, achievementByTitle(t, achievements, "7-Day Streak").Achieved)
	assert.False(t, achievementByTitle(t, achievements, "21-Day Milestone").Achieved)

	habits[0].Streak = 21
	achievements = Evaluate(habits)
	assert.True(t, achievementByTitle(t, achievements, "21-Day Milestone").Achieved)
}

func TestEvaluate_HabitMasterNeedsFiveLongStreaks(t *testing.T) {
	habits := make([]models.Habit, 0, 5)
	for i := 0; i < 4; i++ {
		habits = append(habits, models.Habit{Status: models.HabitStatusActive, Streak: 35})
	}

	achievements := Evaluate(habits)
	assert.False(t, achievementByTitle(t, achievements, "Habit Master").Achieved)

	habits = append(habits, models.Habit{Status: models.HabitStatusActive, Streak: 30})
	achievements = Evaluate(habits)
	assert.True(t, achievementByTitle(t, achievements, "Habit Master").Achieved)
}

func TestEvaluate_TimeOfDayAchievements(t *testing.T) {
	habits := []models.Habit{
		{Name: "Jog", TimeOfDay: "morning", Status: models.HabitStatusActive, Streak: 7},
		{Name: "Journal", TimeOfDay: "evening", Status: models.HabitStatusActive, Streak: 3},
	}

	achievements := Evaluate(habits)
	assert.True(t, achievementByTitle(t, achievements, "Early Bird").Achieved)
	assert.False(t, achievementByTitle(t, achievements, "Night Owl").Achieved)
}

func TestEvaluate_PerfectWeek(t *testing.T) {
	habits := []models.Habit{
		{Status: models.HabitStatusActive, TotalCompletions: 10},
		{Status: models.HabitStatusActive, TotalCompletions: 5},
	}

	// 15 completions >= 2 habits * 7.
	achievements := Evaluate(habits)
	assert.True(t, achievementByTitle(t, achievements, "Perfect Week").Achieved)

	habits[0].TotalCompletions = 5
	achievements = Evaluate(habits)
	assert.False(t, achievementByTitle(t, achievements, "Perfect Week").Achieved)
}

func TestEvaluate_NotPersisted(t *testing.T) {
	// An achievement disappears when the streak behind it resets.
	habits := []models.Habit{{Status: models.HabitStatusActive, Streak: 9}}
	assert.True(t, achievementByTitle(t, Evaluate(habits), "7-Day Streak").Achieved)

	habits[0].Streak = 1
	assert.False(t, achievementByTitle(t, Evaluate(habits), "7-Day Streak").Achieved)
}
