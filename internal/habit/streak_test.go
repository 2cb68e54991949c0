package habit

import (
	"testing"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func habitWithStreak(streak int, last *time.Time) *models.Habit {
	return &models.Habit{
		Name:              "Read",
		Status:            models.HabitStatusActive,
		Streak:            streak,
		LastCompletedDate: last,
	}
}

func TestApplyCompletion_FirstEver(t *testing.T) {
	h := habitWithStreak(0, nil)

	update, err := ApplyCompletion(h, day(2024, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, update.Streak)
	assert.False(t, update.Continued)
}

func TestApplyCompletion_ConsecutiveDays(t *testing.T) {
	h := habitWithStreak(0, nil)
	dates := []time.Time{
		day(2024, time.January, 1),
		day(2024, time.January, 2),
		day(2024, time.January, 3),
	}

	for _, d := range dates {
		update, err := ApplyCompletion(h, d)
		require.NoError(t, err)
		h.Streak = update.Streak
		completed := d
		h.LastCompletedDate = &completed
	}

	assert.Equal(t, 3, h.Streak)
}

func TestApplyCompletion_GapResetsStreak(t *testing.T) {
	last := day(2024, time.January, 1)
	h := habitWithStreak(5, &last)

	// Skipped Jan 2 and Jan 3.
	update, err := ApplyCompletion(h, day(2024, time.January, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, update.Streak)
	assert.False(t, update.Continued)
}

func TestApplyCompletion_SameDayFails(t *testing.T) {
	last := day(2024, time.January, 1)
	h := habitWithStreak(3, &last)

	_, err := ApplyCompletion(h, day(2024, time.January, 1))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// Time of day must not matter.
	_, err = ApplyCompletion(h, time.Date(2024, time.January, 1, 23, 59, 0, 0, time.Local))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestApplyCompletion_BackdatedResetsStreak(t *testing.T) {
	last := day(2024, time.January, 10)
	h := habitWithStreak(4, &last)

	update, err := ApplyCompletion(h, day(2024, time.January, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, update.Streak)
}

func TestApplyCompletion_NearMidnight(t *testing.T) {
	// Completed at 23:50 yesterday, again at 00:10 today: still consecutive.
	last := time.Date(2024, time.March, 1, 23, 50, 0, 0, time.Local)
	h := habitWithStreak(2, &last)

	update, err := ApplyCompletion(h, time.Date(2024, time.March, 2, 0, 10, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 3, update.Streak)
	assert.True(t, update.Continued)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(day(2024, time.January, 1), day(2024, time.January, 1)))
	assert.Equal(t, 1, DaysBetween(day(2024, time.January, 1), day(2024, time.January, 2)))
	assert.Equal(t, 31, DaysBetween(day(2024, time.January, 1), day(2024, time.February, 1)))
	assert.Equal(t, -2, DaysBetween(day(2024, time.January, 3), day(2024, time.January, 1)))
}

func TestIsCompletedToday(t *testing.T) {
	now := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.Local)

	assert.False(t, IsCompletedToday(habitWithStreak(0, nil), now))

	morning := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.Local)
	assert.True(t, IsCompletedToday(habitWithStreak(1, &morning), now))

	yesterday := time.Date(2024, time.June, 14, 8, 0, 0, 0, time.Local)
	assert.False(t, IsCompletedToday(habitWithStreak(1, &yesterday), now))
}

func TestNeedsAttention(t *testing.T) {
	now := day(2024, time.June, 15)

	never := habitWithStreak(0, nil)
	assert.True(t, NeedsAttention(never, now, 3))

	recent := day(2024, time.June, 14)
	assert.False(t, NeedsAttention(habitWithStreak(1, &recent), now, 3))

	stale := day(2024, time.June, 11)
	assert.True(t, NeedsAttention(habitWithStreak(1, &stale), now, 3))

	archived := habitWithStreak(0, nil)
	archived.Status = models.HabitStatusArchived
	assert.False(t, NeedsAttention(archived, now, 3))
}

func TestApplyCompletion_StoredDayKeySurvivesUTCRoundTrip(t *testing.T) {
	// Completed Jan 1 at 23:30 in UTC-5. The driver hands the instant back
	// in UTC (Jan 2, 04:30), but the stored day key keeps the owner's day.
	local := time.FixedZone("UTC-5", -5*60*60)
	completed := time.Date(2024, time.January, 1, 23, 30, 0, 0, local)

	roundTripped := completed.UTC()
	h := habitWithStreak(1, &roundTripped)
	h.LastCompletedDay = DayKey(completed)

	// Minutes later, still Jan 1 for the owner.
	assert.True(t, IsCompletedToday(h, time.Date(2024, time.January, 1, 23, 45, 0, 0, local)))

	_, err := ApplyCompletion(h, time.Date(2024, time.January, 1, 23, 45, 0, 0, local))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// The next local morning extends the streak instead of being rejected.
	update, err := ApplyCompletion(h, time.Date(2024, time.January, 2, 10, 0, 0, 0, local))
	require.NoError(t, err)
	assert.Equal(t, 2, update.Streak)
	assert.True(t, update.Continued)
}

func TestApplyCompletion_MissingDayKeyFallsBackToInstant(t *testing.T) {
	// Habits written before the day key existed only carry the instant;
	// comparisons then run on its UTC date.
	last := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	h := habitWithStreak(3, &last)

	update, err := ApplyCompletion(h, time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 4, update.Streak)
	assert.True(t, update.Continued)
}

func TestDayKey(t *testing.T) {
	local := time.FixedZone("UTC-5", -5*60*60)
	late := time.Date(2024, time.January, 1, 23, 30, 0, 0, local)

	assert.Equal(t, "2024-01-01", DayKey(late))
	assert.Equal(t, "2024-01-02", DayKey(late.UTC()))
}
