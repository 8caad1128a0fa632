package ocr

import (
	"regexp"
	"strconv"
	"time"

	"github.com/sulik0/woking-time-record/internal/models"
)

// Warnings for statistics parses.
const (
	WarnNoAvgHours       = "average hours not recognized"
	WarnNoAttendanceDays = "attendance days not recognized"
)

var reYearMonth = regexp.MustCompile(`(\d{4})年?(\d{1,2})月`)

// A matcher locates one numeric quantity next to a label, tolerating both
// "label then number" and "number then label" phrasings. Matchers are tried
// in order; the first hit wins. Keeping them separate (instead of one
// monolithic pattern) keeps each shape independently testable.
type statMatcher struct {
	re *regexp.Regexp
}

func (m statMatcher) find(text string) (string, bool) {
	sub := m.re.FindStringSubmatch(text)
	if sub == nil {
		return "", false
	}
	return sub[1], true
}

func labelledNumber(labels []string, decimal bool) []statMatcher {
	num := `(\d+)`
	if decimal {
		num = `(\d+(?:\.\d+)?)`
	}
	var matchers []statMatcher
	for _, label := range labels {
		matchers = append(matchers,
			statMatcher{regexp.MustCompile(label + `[:：]?` + num)},
			statMatcher{regexp.MustCompile(num + `[^\d]{0,2}` + label)},
		)
	}
	return matchers
}

var (
	avgHoursMatchers   = labelledNumber([]string{`平均工时`, `平均工作时长`, `日均工时`}, true)
	attendanceMatchers = labelledNumber([]string{`出勤天数`, `出勤`}, false)
	restDayMatchers    = labelledNumber([]string{`休息天数`, `休息`}, false)
)

// ParseStatsText extracts the vendor-reported monthly figures from the
// statistics summary screen. Each quantity is searched independently and
// defaults when absent: year/month to the reference date, numbers to zero.
// Workdays and the reconciliation figures are filled by the caller.
func ParseStatsText(text string, ref time.Time) models.ParsedStatsRecord {
	// The statistics screen lays labels and values out in columns, so the
	// OCR text arrives with arbitrary whitespace between them.
	collapsed := reWhitespace.ReplaceAllString(text, "")

	rec := models.ParsedStatsRecord{
		Year:     ref.Year(),
		Month:    int(ref.Month()),
		Warnings: []string{},
	}

	if m := reYearMonth.FindStringSubmatch(collapsed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			rec.Year = year
			rec.Month = month
		}
	}

	rec.AvgHours = findFloat(collapsed, avgHoursMatchers)
	rec.AttendanceDays = findInt(collapsed, attendanceMatchers)
	rec.RestDays = findInt(collapsed, restDayMatchers)

	if rec.AvgHours == 0 {
		rec.Warnings = append(rec.Warnings, WarnNoAvgHours)
	}
	if rec.AttendanceDays == 0 {
		rec.Warnings = append(rec.Warnings, WarnNoAttendanceDays)
	}
	rec.IsValid = rec.AvgHours > 0 && rec.AttendanceDays > 0
	return rec
}

func findFloat(text string, matchers []statMatcher) float64 {
	for _, m := range matchers {
		if raw, ok := m.find(text); ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				return v
			}
		}
	}
	return 0
}

func findInt(text string, matchers []statMatcher) int {
	for _, m := range matchers {
		if raw, ok := m.find(text); ok {
			if v, err := strconv.Atoi(raw); err == nil {
				return v
			}
		}
	}
	return 0
}
