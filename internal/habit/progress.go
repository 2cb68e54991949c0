package habit

import (
	"math"
	"sort"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
)

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CompletionSet holds a user's completion records grouped by habit id (hex).
// Aggregations are pure functions over one such snapshot plus the habit list;
// they never touch storage and may run concurrently with completions at the
// cost of slightly stale data.
type CompletionSet map[string][]models.CompletionRecord

// WeeklyView buckets completions and targets by weekday over the trailing
// weeksBack*7 days ending at now. Only active habits with a recognized
// frequency contribute to targets; a habit whose custom frequency failed to
// parse still has its completions counted, its target is just zero.
func WeeklyView(habits []models.Habit, completions CompletionSet, now time.Time, weeksBack int) models.WeeklyReport {
	if weeksBack < 1 {
		weeksBack = 1
	}
	windowStart := CalendarDay(now).AddDate(0, 0, -7*weeksBack+1)

	report := models.WeeklyReport{Days: make([]models.ProgressBucket, 7)}
	for i := range report.Days {
		report.Days[i].Label = weekdayLabels[i]
	}

	for i := range habits {
		h := &habits[i]
		if h.Status != models.HabitStatusActive || h.Frequency.Raw == "" {
			continue
		}

		slots := ExpectedPerWeekday(h.Frequency)
		for day, target := range slots {
			report.Days[day].Target += target * weeksBack
			report.TotalTarget += target * weeksBack
		}

		for _, rec := range completions[h.ID.Hex()] {
			day := CalendarDay(rec.Date)
			if day.Before(windowStart) || day.After(CalendarDay(now)) {
				continue
			}
			report.Days[day.Weekday()].Completed++
			report.TotalCompleted++
		}
	}

	report.CompletionRate = ratePercent(report.TotalCompleted, report.TotalTarget, false)
	return report
}

// MonthlyView buckets completions and targets by calendar month for the
// monthsBack months ending with the month of now. Targets are computed
// against each month's actual calendar.
func MonthlyView(habits []models.Habit, completions CompletionSet, now time.Time, monthsBack int) models.MonthlyReport {
	if monthsBack < 1 {
		monthsBack = 1
	}

	report := models.MonthlyReport{}
	for i := monthsBack - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		report.Months = append(report.Months, models.ProgressBucket{
			Label: m.Month().String()[:3],
			Month: int(m.Month()),
			Year:  m.Year(),
		})
	}

	for i := range habits {
		h := &habits[i]
		if h.Status != models.HabitStatusActive || h.Frequency.Raw == "" {
			continue
		}

		for b := range report.Months {
			bucket := &report.Months[b]
			target := ExpectedPerMonth(h.Frequency, bucket.Year, time.Month(bucket.Month))
			bucket.Target += target
			report.TotalTarget += target
		}

		for _, rec := range completions[h.ID.Hex()] {
			for b := range report.Months {
				bucket := &report.Months[b]
				if int(rec.Date.Month()) == bucket.Month && rec.Date.Year() == bucket.Year {
					bucket.Completed++
					report.TotalCompleted++
					break
				}
			}
		}
	}

	report.CompletionRate = ratePercent(report.TotalCompleted, report.TotalTarget, false)
	return report
}

// HabitDistribution ranks active habits by completion rate over the trailing
// daysBack calendar days, capped at 100% and truncated to the top six.
// Habits with neither completions nor a target in the window are excluded;
// a malformed or missing frequency only zeroes the target, it never drops a
// habit that has completions.
func HabitDistribution(habits []models.Habit, completions CompletionSet, now time.Time, daysBack int) []models.DistributionEntry {
	if daysBack < 1 {
		daysBack = 1
	}
	end := CalendarDay(now)
	start := end.AddDate(0, 0, -daysBack+1)

	entries := make([]models.DistributionEntry, 0, len(habits))
	for i := range habits {
		h := &habits[i]
		if h.Status != models.HabitStatusActive {
			continue
		}

		target := ExpectedCount(h.Frequency, start, end)

		completed := 0
		for _, rec := range completions[h.ID.Hex()] {
			day := CalendarDay(rec.Date)
			if !day.Before(start) && !day.After(end) {
				completed++
			}
		}

		if completed == 0 && target == 0 {
			continue
		}

		color := h.Color
		if color == "" {
			color = "#8b5cf6"
		}
		entries = append(entries, models.DistributionEntry{
			Name:        h.Name,
			Rate:        ratePercent(completed, target, true),
			Completions: completed,
			Target:      target,
			Color:       color,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rate > entries[j].Rate
	})
	if len(entries) > 6 {
		entries = entries[:6]
	}
	return entries
}

// CurrentStreaks ranks active habits by current streak, truncated to the
// top four.
func CurrentStreaks(habits []models.Habit) []models.StreakEntry {
	entries := make([]models.StreakEntry, 0, len(habits))
	for i := range habits {
		h := &habits[i]
		if h.Status != models.HabitStatusActive {
			continue
		}
		longest := h.LongestStreak
		if longest < h.Streak {
			longest = h.Streak
		}
		entries = append(entries, models.StreakEntry{
			HabitID:   h.ID.Hex(),
			HabitName: h.Name,
			Current:   h.Streak,
			Longest:   longest,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Current > entries[j].Current
	})
	if len(entries) > 4 {
		entries = entries[:4]
	}
	return entries
}

// Stats summarizes the whole habit collection for the dashboard.
func Stats(habits []models.Habit, now time.Time) models.HabitStats {
	stats := models.HabitStats{TotalHabits: len(habits)}
	for i := range habits {
		h := &habits[i]
		if h.Status == models.HabitStatusActive {
			stats.ActiveHabits++
		}
		if IsCompletedToday(h, now) {
			stats.CompletedToday++
		}
		stats.TotalCompletions += h.TotalCompletions

		longest := h.LongestStreak
		if longest < h.Streak {
			longest = h.Streak
		}
		if longest > stats.LongestStreak {
			stats.LongestStreak = longest
		}
	}
	stats.CurrentStreaks = CurrentStreaks(habits)
	return stats
}

// NeedsAttention reports whether an active habit has gone unfinished for
// minGapDays or more calendar days (never-completed habits always qualify).
func NeedsAttention(h *models.Habit, now time.Time, minGapDays int) bool {
	if h.Status != models.HabitStatusActive {
		return false
	}
	last, ok := lastCompletedDay(h)
	if !ok {
		return true
	}
	return DaysBetween(last, now) >= minGapDays
}

// ratePercent rounds completed/target to a whole percentage. A zero target
// yields zero, and capped output never exceeds 100.
func ratePercent(completed, target int, capped bool) int {
	if target <= 0 {
		return 0
	}
	rate := int(math.Round(float64(completed) / float64(target) * 100))
	if capped && rate > 100 {
		rate = 100
	}
	return rate
}
