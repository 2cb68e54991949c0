package habit

import (
	"testing"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newHabit(name, frequency string) models.Habit {
	return models.Habit{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Frequency: models.ParseFrequency(frequency),
		Status:    models.HabitStatusActive,
	}
}

func recordsOn(h models.Habit, dates ...time.Time) []models.CompletionRecord {
	records := make([]models.CompletionRecord, 0, len(dates))
	for _, d := range dates {
		records = append(records, models.CompletionRecord{
			HabitID: h.ID,
			Date:    d,
			DateKey: d.Format("2006-01-02"),
		})
	}
	return records
}

func TestWeeklyView_WeekendHabitFullRate(t *testing.T) {
	// Week of Mon Jan 1 - Sun Jan 7, 2024.
	now := day(2024, time.January, 7)

	h := newHabit("Long run", "Weekends")
	completions := CompletionSet{
		h.ID.Hex(): recordsOn(h, day(2024, time.January, 6), day(2024, time.January, 7)),
	}

	report := WeeklyView([]models.Habit{h}, completions, now, 1)

	assert.Equal(t, 2, report.TotalTarget)
	assert.Equal(t, 2, report.TotalCompleted)
	assert.Equal(t, 100, report.CompletionRate)

	// Saturday and Sunday slots only.
	assert.Equal(t, 1, report.Days[time.Sunday].Target)
	assert.Equal(t, 1, report.Days[time.Saturday].Target)
	assert.Equal(t, 1, report.Days[time.Sunday].Completed)
	assert.Equal(t, 1, report.Days[time.Saturday].Completed)
	for d := time.Monday; d <= time.Friday; d++ {
		assert.Zero(t, report.Days[d].Target)
		assert.Zero(t, report.Days[d].Completed)
	}
}

func TestWeeklyView_MixedHabits(t *testing.T) {
	now := day(2024, time.January, 7)

	daily := newHabit("Meditate", "Daily")
	weekly := newHabit("Review budget", "Weekly")
	archived := newHabit("Old habit", "Daily")
	archived.Status = models.HabitStatusArchived

	completions := CompletionSet{
		daily.ID.Hex(): recordsOn(daily,
			day(2024, time.January, 1),
			day(2024, time.January, 2),
			day(2024, time.January, 3),
		),
		weekly.ID.Hex(): recordsOn(weekly, day(2024, time.January, 1)),
		// Outside the window, must not count.
		archived.ID.Hex(): recordsOn(archived, day(2024, time.January, 5)),
	}

	report := WeeklyView([]models.Habit{daily, weekly, archived}, completions, now, 1)

	// 7 for the daily habit plus 1 for the weekly one; archived contributes nothing.
	assert.Equal(t, 8, report.TotalTarget)
	assert.Equal(t, 4, report.TotalCompleted)
	assert.Equal(t, 50, report.CompletionRate)

	// Weekly target is attributed to Monday.
	assert.Equal(t, 2, report.Days[time.Monday].Target)
	assert.Equal(t, 2, report.Days[time.Monday].Completed)
}

func TestWeeklyView_MalformedCustomKeepsCompletions(t *testing.T) {
	now := day(2024, time.January, 7)

	h := newHabit("Mystery", "5 times per fortnight")
	completions := CompletionSet{
		h.ID.Hex(): recordsOn(h, day(2024, time.January, 3)),
	}

	report := WeeklyView([]models.Habit{h}, completions, now, 1)

	// Target contribution is zero, but the habit is not excluded.
	assert.Equal(t, 0, report.TotalTarget)
	assert.Equal(t, 1, report.TotalCompleted)
	assert.Equal(t, 0, report.CompletionRate)
	assert.Equal(t, 1, report.Days[time.Wednesday].Completed)
}

func TestWeeklyView_OldCompletionsIgnored(t *testing.T) {
	now := day(2024, time.January, 14)

	h := newHabit("Meditate", "Daily")
	completions := CompletionSet{
		h.ID.Hex(): recordsOn(h,
			day(2024, time.January, 1), // outside one-week window
			day(2024, time.January, 10),
		),
	}

	report := WeeklyView([]models.Habit{h}, completions, now, 1)
	assert.Equal(t, 1, report.TotalCompleted)
}

func TestMonthlyView_CalendarTargets(t *testing.T) {
	now := day(2024, time.March, 15)

	h := newHabit("Meditate", "Daily")
	completions := CompletionSet{
		h.ID.Hex(): recordsOn(h,
			day(2024, time.January, 10),
			day(2024, time.February, 5),
			day(2024, time.February, 6),
		),
	}

	report := MonthlyView([]models.Habit{h}, completions, now, 3)
	require.Len(t, report.Months, 3)

	assert.Equal(t, "Jan", report.Months[0].Label)
	assert.Equal(t, "Feb", report.Months[1].Label)
	assert.Equal(t, "Mar", report.Months[2].Label)

	// Targets follow the actual calendar, leap February included.
	assert.Equal(t, 31, report.Months[0].Target)
	assert.Equal(t, 29, report.Months[1].Target)
	assert.Equal(t, 31, report.Months[2].Target)

	assert.Equal(t, 1, report.Months[0].Completed)
	assert.Equal(t, 2, report.Months[1].Completed)
	assert.Equal(t, 0, report.Months[2].Completed)
}

func TestMonthlyView_YearBoundary(t *testing.T) {
	now := day(2024, time.January, 20)

	h := newHabit("Pay rent", "Monthly")
	completions := CompletionSet{
		h.ID.Hex(): recordsOn(h, day(2023, time.December, 28), day(2024, time.January, 2)),
	}

	report := MonthlyView([]models.Habit{h}, completions, now, 2)
	require.Len(t, report.Months, 2)

	assert.Equal(t, 2023, report.Months[0].Year)
	assert.Equal(t, "Dec", report.Months[0].Label)
	assert.Equal(t, 1, report.Months[0].Completed)
	assert.Equal(t, 2024, report.Months[1].Year)
	assert.Equal(t, 1, report.Months[1].Completed)
	assert.Equal(t, 100, report.CompletionRate)
}

func TestHabitDistribution_RateCappedAt100(t *testing.T) {
	now := day(2024, time.January, 31)

	h := newHabit("Stretch", "Weekly")
	// Far more completions than the weekly target implies.
	dates := make([]time.Time, 0, 20)
	for i := 0; i < 20; i++ {
		dates = append(dates, day(2024, time.January, 31).AddDate(0, 0, -i))
	}
	completions := CompletionSet{h.ID.Hex(): recordsOn(h, dates...)}

	entries := HabitDistribution([]models.Habit{h}, completions, now, 30)
	require.Len(t, entries, 1)
	assert.Equal(t, 100, entries[0].Rate)
	assert.Equal(t, 20, entries[0].Completions)
}

func TestHabitDistribution_ZeroCompletionsStillIncluded(t *testing.T) {
	now := day(2024, time.January, 7)

	h := newHabit("Swim", "3 times per week")
	entries := HabitDistribution([]models.Habit{h}, CompletionSet{}, now, 7)

	// Target is 3, so the habit stays in the list at 0%.
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Rate)
	assert.Equal(t, 3, entries[0].Target)
}

func TestHabitDistribution_ExcludesZeroTargetZeroCompletions(t *testing.T) {
	now := day(2024, time.January, 7)

	unparsed := newHabit("Mystery", "sometimes")
	entries := HabitDistribution([]models.Habit{unparsed}, CompletionSet{}, now, 7)
	assert.Empty(t, entries)

	// With a completion the habit comes back, target stays zero.
	completions := CompletionSet{
		unparsed.ID.Hex(): recordsOn(unparsed, day(2024, time.January, 3)),
	}
	entries = HabitDistribution([]models.Habit{unparsed}, completions, now, 7)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Target)
}

func TestHabitDistribution_SortedAndTruncated(t *testing.T) {
	now := day(2024, time.January, 31)

	habits := make([]models.Habit, 0, 8)
	completions := CompletionSet{}
	for i := 0; i < 8; i++ {
		h := newHabit("Habit", "Daily")
		// Habit i gets i completions in the window.
		dates := make([]time.Time, 0, i)
		for j := 0; j < i; j++ {
			dates = append(dates, day(2024, time.January, 31).AddDate(0, 0, -j))
		}
		completions[h.ID.Hex()] = recordsOn(h, dates...)
		habits = append(habits, h)
	}

	entries := HabitDistribution(habits, completions, now, 30)
	require.Len(t, entries, 6)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Rate, entries[i].Rate)
	}
}

func TestCurrentStreaks_RankedTopFour(t *testing.T) {
	habits := []models.Habit{
		{ID: primitive.NewObjectID(), Name: "A", Status: models.HabitStatusActive, Streak: 3, LongestStreak: 9},
		{ID: primitive.NewObjectID(), Name: "B", Status: models.HabitStatusActive, Streak: 12},
		{ID: primitive.NewObjectID(), Name: "C", Status: models.HabitStatusActive, Streak: 7, LongestStreak: 7},
		{ID: primitive.NewObjectID(), Name: "D", Status: models.HabitStatusArchived, Streak: 20},
		{ID: primitive.NewObjectID(), Name: "E", Status: models.HabitStatusActive, Streak: 1},
		{ID: primitive.NewObjectID(), Name: "F", Status: models.HabitStatusActive, Streak: 5},
	}

	entries := CurrentStreaks(habits)
	require.Len(t, entries, 4)

	assert.Equal(t, "B", entries[0].HabitName)
	assert.Equal(t, 12, entries[0].Current)
	// Longest falls back to the current streak when it was never recorded.
	assert.Equal(t, 12, entries[0].Longest)

	assert.Equal(t, "C", entries[1].HabitName)
	assert.Equal(t, "F", entries[2].HabitName)
	assert.Equal(t, "A", entries[3].HabitName)
	assert.Equal(t, 9, entries[3].Longest)
}

func TestStats(t *testing.T) {
	now := time.Date(2024, time.June, 15, 18, 0, 0, 0, time.Local)
	today := time.Date(2024, time.June, 15, 7, 0, 0, 0, time.Local)
	lastWeek := day(2024, time.June, 8)

	habits := []models.Habit{
		{Name: "A", Status: models.HabitStatusActive, Streak: 4, LongestStreak: 11, TotalCompletions: 40, LastCompletedDate: &today},
		{Name: "B", Status: models.HabitStatusActive, Streak: 2, TotalCompletions: 6, LastCompletedDate: &lastWeek},
		{Name: "C", Status: models.HabitStatusArchived, Streak: 0, TotalCompletions: 3},
	}

	stats := Stats(habits, now)
	assert.Equal(t, 3, stats.TotalHabits)
	assert.Equal(t, 2, stats.ActiveHabits)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 49, stats.TotalCompletions)
	assert.Equal(t, 11, stats.LongestStreak)
	require.Len(t, stats.CurrentStreaks, 2)
	assert.Equal(t, "A", stats.CurrentStreaks[0].HabitName)
}

func TestHabitDistribution_EmptyFrequencyStillListed(t *testing.T) {
	now := day(2024, time.January, 31)

	// No frequency, but real completions: shows up with a zero target
	// instead of vanishing from the chart.
	h := newHabit("Journal", "")
	completions := CompletionSet{
		h.ID.Hex(): recordsOn(h, day(2024, time.January, 29), day(2024, time.January, 30)),
	}

	entries := HabitDistribution([]models.Habit{h}, completions, now, 30)

	require.Len(t, entries, 1)
	assert.Equal(t, "Journal", entries[0].Name)
	assert.Equal(t, 2, entries[0].Completions)
	assert.Equal(t, 0, entries[0].Target)
	assert.Equal(t, 0, entries[0].Rate)
}

func TestHabitDistribution_EmptyFrequencyNoCompletionsExcluded(t *testing.T) {
	now := day(2024, time.January, 31)
	h := newHabit("Journal", "")

	entries := HabitDistribution([]models.Habit{h}, CompletionSet{}, now, 30)
	assert.Empty(t, entries)
}
