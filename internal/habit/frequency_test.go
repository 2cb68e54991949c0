package habit

import (
	"testing"
	"time"

	"github.com/Dias221467/Habit_Manager/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseFrequency(t *testing.T) {
	assert.Equal(t, models.FrequencyDaily, models.ParseFrequency("Daily").Kind)
	assert.Equal(t, models.FrequencyWeekdays, models.ParseFrequency("weekdays").Kind)
	assert.Equal(t, models.FrequencyWeekends, models.ParseFrequency("Weekends").Kind)
	assert.Equal(t, models.FrequencyWeekly, models.ParseFrequency("Weekly").Kind)
	assert.Equal(t, models.FrequencyMonthly, models.ParseFrequency("Monthly").Kind)

	custom := models.ParseFrequency("3 times per week")
	assert.Equal(t, models.FrequencyCustom, custom.Kind)
	assert.Equal(t, 3, custom.Times)
	assert.Equal(t, models.FrequencyUnitWeek, custom.Unit)

	once := models.ParseFrequency("1 time per month")
	assert.Equal(t, models.FrequencyCustom, once.Kind)
	assert.Equal(t, 1, once.Times)
	assert.Equal(t, models.FrequencyUnitMonth, once.Unit)

	assert.Equal(t, models.FrequencyUnknown, models.ParseFrequency("whenever I feel like it").Kind)
	assert.Equal(t, models.FrequencyUnknown, models.ParseFrequency("0 times per week").Kind)
	assert.Equal(t, models.FrequencyUnknown, models.ParseFrequency("").Kind)
}

func TestExpectedCount_Daily(t *testing.T) {
	// Jan 1-31, 2024: one per calendar day.
	count := ExpectedCount(models.ParseFrequency("Daily"), day(2024, time.January, 1), day(2024, time.January, 31))
	assert.Equal(t, 31, count)

	// Single-day range.
	count = ExpectedCount(models.ParseFrequency("Daily"), day(2024, time.January, 5), day(2024, time.January, 5))
	assert.Equal(t, 1, count)

	// Inverted range is empty.
	count = ExpectedCount(models.ParseFrequency("Daily"), day(2024, time.January, 5), day(2024, time.January, 4))
	assert.Equal(t, 0, count)
}

func TestExpectedCount_WeekdaysAndWeekends(t *testing.T) {
	// Jan 2024 starts on a Monday and has 23 weekdays and 8 weekend days.
	start := day(2024, time.January, 1)
	end := day(2024, time.January, 31)

	assert.Equal(t, 23, ExpectedCount(models.ParseFrequency("Weekdays"), start, end))
	assert.Equal(t, 8, ExpectedCount(models.ParseFrequency("Weekends"), start, end))

	// Mon-Fri single week.
	assert.Equal(t, 5, ExpectedCount(models.ParseFrequency("Weekdays"), day(2024, time.January, 1), day(2024, time.January, 7)))
	assert.Equal(t, 2, ExpectedCount(models.ParseFrequency("Weekends"), day(2024, time.January, 1), day(2024, time.January, 7)))
}

func TestExpectedCount_WeeklyAndMonthly(t *testing.T) {
	// Weekly: one per started 7-day window.
	assert.Equal(t, 1, ExpectedCount(models.ParseFrequency("Weekly"), day(2024, time.January, 1), day(2024, time.January, 7)))
	assert.Equal(t, 2, ExpectedCount(models.ParseFrequency("Weekly"), day(2024, time.January, 1), day(2024, time.January, 8)))
	assert.Equal(t, 5, ExpectedCount(models.ParseFrequency("Weekly"), day(2024, time.January, 1), day(2024, time.January, 30)))

	// Monthly: one per calendar month the range overlaps, not per 30 days.
	assert.Equal(t, 1, ExpectedCount(models.ParseFrequency("Monthly"), day(2024, time.January, 1), day(2024, time.January, 31)))
	assert.Equal(t, 2, ExpectedCount(models.ParseFrequency("Monthly"), day(2024, time.January, 25), day(2024, time.February, 3)))
	assert.Equal(t, 3, ExpectedCount(models.ParseFrequency("Monthly"), day(2023, time.December, 15), day(2024, time.February, 1)))
}

func TestExpectedCount_Custom(t *testing.T) {
	// 3 per week over one week.
	assert.Equal(t, 3, ExpectedCount(models.ParseFrequency("3 times per week"), day(2024, time.January, 1), day(2024, time.January, 7)))
	// Two started weeks.
	assert.Equal(t, 6, ExpectedCount(models.ParseFrequency("3 times per week"), day(2024, time.January, 1), day(2024, time.January, 8)))

	// Per-month custom counts calendar months.
	assert.Equal(t, 5, ExpectedCount(models.ParseFrequency("5 times per month"), day(2024, time.January, 1), day(2024, time.January, 31)))
	assert.Equal(t, 10, ExpectedCount(models.ParseFrequency("5 times per month"), day(2024, time.January, 20), day(2024, time.February, 10)))

	// Unrecognized spec degrades to zero instead of failing.
	assert.Equal(t, 0, ExpectedCount(models.ParseFrequency("sometimes"), day(2024, time.January, 1), day(2024, time.January, 31)))
}

func TestExpectedPerWeekday_FixedKinds(t *testing.T) {
	assert.Equal(t, [7]int{1, 1, 1, 1, 1, 1, 1}, ExpectedPerWeekday(models.ParseFrequency("Daily")))
	assert.Equal(t, [7]int{0, 1, 1, 1, 1, 1, 0}, ExpectedPerWeekday(models.ParseFrequency("Weekdays")))
	assert.Equal(t, [7]int{1, 0, 0, 0, 0, 0, 1}, ExpectedPerWeekday(models.ParseFrequency("Weekends")))

	// Weekly habits land in Monday's slot.
	assert.Equal(t, [7]int{0, 1, 0, 0, 0, 0, 0}, ExpectedPerWeekday(models.ParseFrequency("Weekly")))

	// Monthly habits contribute nothing to a weekly view.
	assert.Equal(t, [7]int{}, ExpectedPerWeekday(models.ParseFrequency("Monthly")))
}

func TestExpectedPerWeekday_CustomSpacing(t *testing.T) {
	// 3 per week spaced at floor(7/3)=2 days starting Sunday: Sun, Tue, Thu.
	assert.Equal(t, [7]int{1, 0, 1, 0, 1, 0, 0}, ExpectedPerWeekday(models.ParseFrequency("3 times per week")))

	// 2 per week at interval 3: Sun, Wed.
	assert.Equal(t, [7]int{1, 0, 0, 1, 0, 0, 0}, ExpectedPerWeekday(models.ParseFrequency("2 times per week")))

	// 7 per week fills every slot.
	assert.Equal(t, [7]int{1, 1, 1, 1, 1, 1, 1}, ExpectedPerWeekday(models.ParseFrequency("7 times per week")))

	// More than 7 slots cannot be distributed.
	assert.Equal(t, [7]int{}, ExpectedPerWeekday(models.ParseFrequency("9 times per week")))

	// Per-month customs are month-total only.
	assert.Equal(t, [7]int{}, ExpectedPerWeekday(models.ParseFrequency("5 times per month")))
}

func TestExpectedPerMonth(t *testing.T) {
	// February 2024 is a leap month: 29 days, 21 weekdays, 8 weekend days.
	assert.Equal(t, 29, ExpectedPerMonth(models.ParseFrequency("Daily"), 2024, time.February))
	assert.Equal(t, 21, ExpectedPerMonth(models.ParseFrequency("Weekdays"), 2024, time.February))
	assert.Equal(t, 8, ExpectedPerMonth(models.ParseFrequency("Weekends"), 2024, time.February))
	assert.Equal(t, 5, ExpectedPerMonth(models.ParseFrequency("Weekly"), 2024, time.February))
	assert.Equal(t, 1, ExpectedPerMonth(models.ParseFrequency("Monthly"), 2024, time.February))
	assert.Equal(t, 15, ExpectedPerMonth(models.ParseFrequency("3 times per week"), 2024, time.February))
	assert.Equal(t, 4, ExpectedPerMonth(models.ParseFrequency("4 times per month"), 2024, time.February))
	assert.Equal(t, 0, ExpectedPerMonth(models.FrequencySpec{}, 2024, time.February))
}
