package habit

import (
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
)

// ExpectedCount returns how many completions the frequency spec implies over
// the inclusive calendar-day range [start, end]. Unrecognized specs resolve
// to zero; the function never fails.
func ExpectedCount(spec models.FrequencySpec, start, end time.Time) int {
	from := CalendarDay(start)
	to := CalendarDay(end)
	if to.Before(from) {
		return 0
	}
	days := DaysBetween(from, to) + 1

	switch spec.Kind {
	case models.FrequencyDaily:
		return days
	case models.FrequencyWeekdays:
		return countMatchingDays(from, days, func(d time.Weekday) bool {
			return d >= time.Monday && d <= time.Friday
		})
	case models.FrequencyWeekends:
		return countMatchingDays(from, days, func(d time.Weekday) bool {
			return d == time.Saturday || d == time.Sunday
		})
	case models.FrequencyWeekly:
		// One per started 7-day window.
		return (days + 6) / 7
	case models.FrequencyMonthly:
		// One per calendar month overlapping the range, not per 30-day window.
		return monthsOverlapping(from, to)
	case models.FrequencyCustom:
		switch spec.Unit {
		case models.FrequencyUnitWeek:
			return spec.Times * ((days + 6) / 7)
		case models.FrequencyUnitMonth:
			return spec.Times * monthsOverlapping(from, to)
		}
	}
	return 0
}

// ExpectedPerWeekday distributes a spec's weekly target over the seven
// weekday slots, indexed Sunday=0 through Saturday=6. The conventions here
// matter downstream: weekly habits land in Monday's slot, and custom
// per-week habits are spread at floor(7/n) intervals starting Sunday, so
// actual-vs-target comparisons stay weekday-aligned. Monthly and custom
// per-month habits contribute nothing to a weekly view.
func ExpectedPerWeekday(spec models.FrequencySpec) [7]int {
	var slots [7]int

	switch spec.Kind {
	case models.FrequencyDaily:
		for i := range slots {
			slots[i] = 1
		}
	case models.FrequencyWeekdays:
		for i := int(time.Monday); i <= int(time.Friday); i++ {
			slots[i] = 1
		}
	case models.FrequencyWeekends:
		slots[time.Sunday] = 1
		slots[time.Saturday] = 1
	case models.FrequencyWeekly:
		slots[time.Monday] = 1
	case models.FrequencyCustom:
		if spec.Unit != models.FrequencyUnitWeek || spec.Times <= 0 || spec.Times > 7 {
			break
		}
		interval := 7 / spec.Times
		for i := 0; i < spec.Times; i++ {
			slots[(i*interval)%7]++
		}
	}

	return slots
}

// ExpectedPerMonth returns the spec's target for one calendar month,
// counting weekdays and weekends against the actual calendar rather than
// approximating.
func ExpectedPerMonth(spec models.FrequencySpec, year int, month time.Month) int {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	switch spec.Kind {
	case models.FrequencyDaily:
		return daysInMonth
	case models.FrequencyWeekdays, models.FrequencyWeekends:
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(year, month, daysInMonth, 0, 0, 0, 0, time.UTC)
		return ExpectedCount(spec, first, last)
	case models.FrequencyWeekly:
		return (daysInMonth + 6) / 7
	case models.FrequencyMonthly:
		return 1
	case models.FrequencyCustom:
		switch spec.Unit {
		case models.FrequencyUnitWeek:
			return spec.Times * ((daysInMonth + 6) / 7)
		case models.FrequencyUnitMonth:
			return spec.Times
		}
	}
	return 0
}

func countMatchingDays(from time.Time, days int, match func(time.Weekday) bool) int {
	count := 0
	for i := 0; i < days; i++ {
		if match(from.AddDate(0, 0, i).Weekday()) {
			count++
		}
	}
	return count
}

// monthsOverlapping counts the calendar months touched by [from, to].
func monthsOverlapping(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
}
