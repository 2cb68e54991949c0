package habit

import (
	"errors"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
)

// ErrAlreadyCompleted is returned when a habit is completed twice on the same
// calendar day. Callers should surface it as an informational message, not a
// failure.
var ErrAlreadyCompleted = errors.New("habit already completed today")

// CalendarDay strips the time of day, keeping the date in its own location.
// All streak comparisons run on calendar days in the user's local zone so a
// completion just before midnight never breaks a streak.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b (b - a).
// Dates are re-anchored in UTC so daylight-saving shifts cannot make a
// calendar day look shorter or longer than 24 hours.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// SameCalendarDay reports whether two instants fall on the same calendar day.
func SameCalendarDay(a, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}

// DayKey formats the calendar day of t, in t's own location, as YYYY-MM-DD.
// It is what gets persisted: the driver stores instants in UTC, so a bare
// time.Time loses the owner's calendar day for evening completions west of
// UTC (and morning ones east of it).
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// lastCompletedDay returns the habit's last completed calendar day at UTC
// midnight. The stored day key wins; habits written before the key existed
// fall back to the instant's UTC date.
func lastCompletedDay(h *models.Habit) (time.Time, bool) {
	if h.LastCompletedDay != "" {
		if d, err := time.ParseInLocation("2006-01-02", h.LastCompletedDay, time.UTC); err == nil {
			return d, true
		}
	}
	if h.LastCompletedDate != nil {
		t := h.LastCompletedDate.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// IsCompletedToday reports whether the habit was completed on the calendar
// day of now. Computed at read time; the stale "completedToday" flag the old
// client cached is gone.
func IsCompletedToday(h *models.Habit, now time.Time) bool {
	last, ok := lastCompletedDay(h)
	if !ok {
		return false
	}
	return DaysBetween(last, now) == 0
}

// StreakUpdate is the outcome of applying one completion to a habit's streak.
type StreakUpdate struct {
	Streak    int
	Continued bool
}

// ApplyCompletion decides how one completion changes a habit's streak.
// It does not mutate the habit.
//
// A completion on the same calendar day as the last one fails with
// ErrAlreadyCompleted. Completing exactly the day after the last completion
// extends the streak; any other gap, including a backdated completion,
// resets it to 1.
func ApplyCompletion(h *models.Habit, completion time.Time) (StreakUpdate, error) {
	last, ok := lastCompletedDay(h)
	if !ok {
		return StreakUpdate{Streak: 1}, nil
	}

	gapDays := DaysBetween(last, completion)
	if gapDays == 0 {
		return StreakUpdate{}, ErrAlreadyCompleted
	}
	if gapDays == 1 {
		return StreakUpdate{Streak: h.Streak + 1, Continued: true}, nil
	}

	// Missed days, or a backdated completion: start over.
	return StreakUpdate{Streak: 1}, nil
}
