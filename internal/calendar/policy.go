// Package calendar encodes the PRC statutory holiday schedule and the
// working-day arithmetic derived from it. The holiday and shifted-workday
// tables are process-wide constant data covering 2024-2025; dates outside the
// tabulated range fall back to the plain weekend rule, which is a known
// accuracy boundary rather than an error.
package calendar

import "time"

// RequiredOvertimePerWorkday is the fixed policy of two required overtime
// hours per working day, in minutes.
const RequiredOvertimePerWorkday = 120

const dateLayout = "2006-01-02"

// Statutory holidays (days off) per the State Council schedule.
var holidays = dateSet(
	// 2024
	"2024-01-01",
	"2024-02-10", "2024-02-11", "2024-02-12", "2024-02-13", "2024-02-14", "2024-02-15", "2024-02-16", "2024-02-17",
	"2024-04-04", "2024-04-05", "2024-04-06",
	"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05",
	"2024-06-08", "2024-06-09", "2024-06-10",
	"2024-09-15", "2024-09-16", "2024-09-17",
	"2024-10-01", "2024-10-02", "2024-10-03", "2024-10-04", "2024-10-05", "2024-10-06", "2024-10-07",
	// 2025
	"2025-01-01",
	"2025-01-28", "2025-01-29", "2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04",
	"2025-04-04", "2025-04-05", "2025-04-06",
	"2025-05-01", "2025-05-02", "2025-05-03", "2025-05-04", "2025-05-05",
	"2025-05-31", "2025-06-01", "2025-06-02",
	"2025-10-01", "2025-10-02", "2025-10-03", "2025-10-04", "2025-10-05", "2025-10-06", "2025-10-07", "2025-10-08",
)

// Weekend dates redesignated as working days to compensate for a holiday
// elsewhere in the schedule (调休).
var shiftedWorkdays = dateSet(
	// 2024
	"2024-02-04", "2024-02-18",
	"2024-04-07", "2024-04-28",
	"2024-05-11",
	"2024-09-14", "2024-09-29",
	"2024-10-12",
	// 2025
	"2025-01-26", "2025-02-08",
	"2025-04-27",
	"2025-09-28",
	"2025-10-11",
)

func dateSet(dates ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// IsHoliday reports whether date is a statutory holiday.
func IsHoliday(date time.Time) bool {
	_, ok := holidays[date.Format(dateLayout)]
	return ok
}

// IsShiftedWorkday reports whether date is a weekend day designated as a
// working day.
func IsShiftedWorkday(date time.Time) bool {
	_, ok := shiftedWorkdays[date.Format(dateLayout)]
	return ok
}

// IsRestDay reports whether no standard work is expected on date.
// Precedence: holiday > shift override > weekend. Well-formed tables never
// flag the same date both ways, but if they did, holiday wins.
func IsRestDay(date time.Time) bool {
	if IsHoliday(date) {
		return true
	}
	if IsShiftedWorkday(date) {
		return false
	}
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WorkdaysInMonth counts the working days of the calendar month containing
// date.
func WorkdaysInMonth(date time.Time) int {
	count := 0
	for d := monthStart(date); d.Month() == date.Month() && d.Year() == date.Year(); d = d.AddDate(0, 0, 1) {
		if !IsRestDay(d) {
			count++
		}
	}
	return count
}

// RemainingRestDaysInMonth counts rest days left in the month containing date.
// For the month containing now, it applies the full rest-day policy from now's
// date (inclusive) through month end. For any other month it counts plain
// weekend days only, ignoring holidays and shift overrides. The out-of-month
// branch is knowingly inconsistent with the in-month one and is preserved
// as-is; changing it is a product decision.
func RemainingRestDaysInMonth(now, date time.Time) int {
	sameMonth := now.Year() == date.Year() && now.Month() == date.Month()

	start := monthStart(date)
	if sameMonth {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	}

	count := 0
	for d := start; d.Month() == date.Month() && d.Year() == date.Year(); d = d.AddDate(0, 0, 1) {
		if sameMonth {
			if IsRestDay(d) {
				count++
			}
			continue
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			count++
		}
	}
	return count
}

// RequiredOvertimeMinutes returns the overtime obligation for the given
// number of working days.
func RequiredOvertimeMinutes(workdays int) int {
	return workdays * RequiredOvertimePerWorkday
}

func monthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
