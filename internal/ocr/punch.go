package ocr

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/sulik0/woking-time-record/internal/models"
)

// Warning messages surfaced on punch parses. The parser never fails; these are
// the advisory signals the caller acts on.
const (
	WarnNoPunches  = "no valid punches found, manual entry required"
	WarnSingleTime = "only one time point found, confirm start/end manually"
)

var (
	// Full year-month-day, tolerating the separators the attendance app and
	// the OCR engine produce between components.
	reFullDate = regexp.MustCompile(`(\d{4})[年/／\-.](\d{1,2})[月/／\-.](\d{1,2})日?`)
	// Month-day only, e.g. 3月15日; the year comes from the reference date.
	reMonthDay = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`)

	reWhitespace = regexp.MustCompile(`\s+`)

	// Times keep their confusable glyphs until normalization: 1-2 digit-like
	// characters, a separator, 1-2 digit-like characters.
	reTime = regexp.MustCompile(digitLikeClass + `{1,2}\s*[:：.\-]\s*` + digitLikeClass + `{1,2}`)

	reTimeSep = regexp.MustCompile(`\s*[:：.\-]\s*`)
)

// ParsePunchText extracts a date and a sorted, deduplicated list of clock
// times from raw OCR text. ref supplies the fallback date when the text
// carries none. The result is always usable; inspect Warnings and IsValid.
func ParsePunchText(text string, ref time.Time) models.ParsedPunchRecord {
	rec := models.ParsedPunchRecord{Warnings: []string{}}

	date, ok := extractDate(text, ref)
	rec.Date = date
	if !ok {
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("no date recognized, defaulting to %s", date))
	}

	rec.Times = ExtractTimes(text)
	switch len(rec.Times) {
	case 0:
		rec.Warnings = append(rec.Warnings, WarnNoPunches)
	case 1:
		rec.StartTime = rec.Times[0]
		rec.Warnings = append(rec.Warnings, WarnSingleTime)
	default:
		rec.StartTime = rec.Times[0]
		rec.EndTime = rec.Times[len(rec.Times)-1]
	}

	rec.IsValid = rec.StartTime != "" && rec.EndTime != ""
	return rec
}

// extractDate returns the ISO date found in text, or the reference date when
// nothing matches. The second return reports whether a date was recognized.
func extractDate(text string, ref time.Time) (string, bool) {
	// Dates are matched on whitespace-stripped text so that glyphs split
	// apart by the OCR engine still line up.
	stripped := reWhitespace.ReplaceAllString(text, "")

	if m := reFullDate.FindStringSubmatch(stripped); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if monthDayInRange(month, day) {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
		}
	}

	if m := reMonthDay.FindStringSubmatch(stripped); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if monthDayInRange(month, day) {
			return fmt.Sprintf("%04d-%02d-%02d", ref.Year(), month, day), true
		}
	}

	return ref.Format("2006-01-02"), false
}

// ExtractTimes scans text for anything resembling a clock time, repairs
// confusable glyphs, and keeps only values inside the valid 24-hour range.
// The result is deduplicated and sorted ascending by minutes since midnight.
func ExtractTimes(text string) []string {
	seen := map[string]struct{}{}
	var times []string

	for _, match := range reTime.FindAllString(text, -1) {
		parts := reTimeSep.Split(match, 2)
		if len(parts) != 2 {
			continue
		}
		hour, err := strconv.Atoi(NormalizeDigits(parts[0]))
		if err != nil {
			continue
		}
		minute, err := strconv.Atoi(NormalizeDigits(parts[1]))
		if err != nil {
			continue
		}
		// Out-of-range matches are dropped entirely, never clamped: a bogus
		// 25:61 surfacing as a real punch would poison every derived number.
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			continue
		}
		formatted := fmt.Sprintf("%02d:%02d", hour, minute)
		if _, dup := seen[formatted]; dup {
			continue
		}
		seen[formatted] = struct{}{}
		times = append(times, formatted)
	}

	sort.Slice(times, func(i, j int) bool {
		return clockMinutes(times[i]) < clockMinutes(times[j])
	})
	return times
}

func clockMinutes(hhmm string) int {
	hour, _ := strconv.Atoi(hhmm[:2])
	minute, _ := strconv.Atoi(hhmm[3:])
	return hour*60 + minute
}

func monthDayInRange(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

