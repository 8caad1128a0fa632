package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsHoliday(t *testing.T) {
	assert.True(t, IsHoliday(date(2024, time.February, 10)))
	assert.True(t, IsHoliday(date(2024, time.October, 7)))
	assert.True(t, IsHoliday(date(2025, time.January, 28)))
	assert.True(t, IsHoliday(date(2025, time.October, 8)))
	assert.False(t, IsHoliday(date(2024, time.March, 15)))
}

func TestIsShiftedWorkday(t *testing.T) {
	assert.True(t, IsShiftedWorkday(date(2024, time.February, 18)))
	assert.True(t, IsShiftedWorkday(date(2025, time.September, 28)))
	assert.False(t, IsShiftedWorkday(date(2024, time.March, 16)))
}

func TestIsRestDayPrecedence(t *testing.T) {
	// National Day holiday on a weekday.
	assert.True(t, IsRestDay(date(2024, time.October, 1)))
	// Shifted workday lands on a Sunday but counts as working.
	assert.False(t, IsRestDay(date(2024, time.February, 18)))
	// Plain weekend.
	assert.True(t, IsRestDay(date(2024, time.March, 16)))
	assert.True(t, IsRestDay(date(2024, time.March, 17)))
	// Plain weekday.
	assert.False(t, IsRestDay(date(2024, time.March, 13)))
}

func TestIsRestDayOutsideTabulatedYears(t *testing.T) {
	// 2023-01-02 was a Monday; without table coverage only the weekend rule
	// applies.
	assert.False(t, IsRestDay(date(2023, time.January, 2)))
	assert.True(t, IsRestDay(date(2023, time.January, 7)))
}

func TestWorkdaysInMonth(t *testing.T) {
	// March 2024: no holidays, no shifts, 10 weekend days in 31.
	assert.Equal(t, 21, WorkdaysInMonth(date(2024, time.March, 1)))
	// May 2024: five holiday days, one shifted Saturday (May 11).
	assert.Equal(t, 21, WorkdaysInMonth(date(2024, time.May, 15)))
}

func TestRequiredOvertimeMinutes(t *testing.T) {
	assert.Equal(t, 2520, RequiredOvertimeMinutes(21))
	assert.Equal(t, 0, RequiredOvertimeMinutes(0))
}

func TestRemainingRestDaysInMonthCurrentMonth(t *testing.T) {
	// From May 1, every rest day of May 2024 is still ahead.
	assert.Equal(t, 10, RemainingRestDaysInMonth(date(2024, time.May, 1), date(2024, time.May, 1)))
	// May 27-31 2024 are all weekdays.
	assert.Equal(t, 0, RemainingRestDaysInMonth(date(2024, time.May, 27), date(2024, time.May, 1)))
	// From May 10, the shifted Saturday May 11 does not count as rest.
	assert.Equal(t, 5, RemainingRestDaysInMonth(date(2024, time.May, 10), date(2024, time.May, 1)))
}

func TestRemainingRestDaysInMonthOtherMonth(t *testing.T) {
	// For a month other than now's, only plain weekends are counted even
	// where the holiday table would say otherwise.
	got := RemainingRestDaysInMonth(date(2024, time.March, 15), date(2024, time.June, 1))
	assert.Equal(t, 10, got)
}
