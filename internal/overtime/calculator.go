// Package overtime holds the pure worked/overtime arithmetic. Every function
// is stateless and safe for concurrent use.
package overtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sulik0/woking-time-record/internal/calendar"
	"github.com/sulik0/woking-time-record/internal/models"
)

const (
	// StandardWorkdayMinutes is the eight-hour standard day.
	StandardWorkdayMinutes = 480
	// LunchBreakMinutes is deducted from any shift long enough to have
	// plausibly included a lunch break.
	LunchBreakMinutes = 60
	// lunchThresholdMinutes is the heuristic cutoff: shifts of four hours or
	// less are assumed to have no lunch break.
	lunchThresholdMinutes = 240
)

// Classify maps a date onto its day type under the calendar policy.
func Classify(date time.Time) models.DayType {
	if calendar.IsRestDay(date) {
		return models.DayTypeRestDay
	}
	return models.DayTypeWorkday
}

// ParseClock converts an HH:mm string to minutes since midnight.
func ParseClock(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", hhmm)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", hhmm)
	}
	return hour*60 + minute, nil
}

// WorkedMinutes computes end minus start in minutes within the same day, then
// deducts the lunch break when the raw duration exceeds the four-hour
// threshold. A misordered pair yields a negative result which is propagated
// unchanged; callers decide whether to reject it.
func WorkedMinutes(start, end string) (int, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	raw := endMin - startMin
	if raw > lunchThresholdMinutes {
		return raw - LunchBreakMinutes, nil
	}
	return raw, nil
}

// OvertimeMinutes derives the overtime share of workedMinutes. On a rest day
// every worked minute counts as overtime; on a workday only the excess over
// the standard eight hours does.
func OvertimeMinutes(workedMinutes int, dayType models.DayType) int {
	if dayType == models.DayTypeRestDay {
		return workedMinutes
	}
	if workedMinutes > StandardWorkdayMinutes {
		return workedMinutes - StandardWorkdayMinutes
	}
	return 0
}

// Reconcile fills the derived fields of a parsed statistics record: the total
// hours implied by the vendor average, the corrected average against the true
// workday count, and how many attendance days fell on weekends.
func Reconcile(rec models.ParsedStatsRecord) models.ParsedStatsRecord {
	rec.TotalHours = rec.AvgHours * float64(rec.AttendanceDays)
	if rec.Workdays > 0 {
		rec.CorrectAvgHours = rec.TotalHours / float64(rec.Workdays)
	} else {
		rec.CorrectAvgHours = 0
	}
	rec.WeekendWorkDays = rec.AttendanceDays - rec.Workdays
	if rec.WeekendWorkDays < 0 {
		rec.WeekendWorkDays = 0
	}
	return rec
}
