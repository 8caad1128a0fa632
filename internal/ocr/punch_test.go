package ocr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var punchRef = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

func TestParsePunchTextFullDate(t *testing.T) {
	rec := ParsePunchText("2024年3月15日 上班 09:00 下班 18:30", punchRef)

	assert.Equal(t, "2024-03-15", rec.Date)
	assert.Equal(t, []string{"09:00", "18:30"}, rec.Times)
	assert.Equal(t, "09:00", rec.StartTime)
	assert.Equal(t, "18:30", rec.EndTime)
	assert.True(t, rec.IsValid)
	assert.Empty(t, rec.Warnings)
}

func TestParsePunchTextDateSeparators(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"slashes", "2024/3/15 09:00 18:30"},
		{"dashes", "2024-3-15 09:00 18:30"},
		{"dots", "2024.3.15 09:00 18:30"},
		{"fullwidth slash", "2024／3／15 09:00 18:30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ParsePunchText(tc.text, punchRef)
			assert.Equal(t, "2024-03-15", rec.Date)
		})
	}
}

func TestParsePunchTextMonthDayUsesReferenceYear(t *testing.T) {
	rec := ParsePunchText("3月5日 08:58 19:02", punchRef)

	assert.Equal(t, "2024-03-05", rec.Date)
	assert.True(t, rec.IsValid)
}

func TestParsePunchTextDateSplitByWhitespace(t *testing.T) {
	// OCR frequently splits date glyphs apart.
	rec := ParsePunchText("2024 年 3 月 15 日 09:00 18:00", punchRef)

	assert.Equal(t, "2024-03-15", rec.Date)
}

func TestParsePunchTextNoDateFallsBack(t *testing.T) {
	rec := ParsePunchText("上班 09:00 下班 18:00", punchRef)

	assert.Equal(t, "2024-03-20", rec.Date)
	require.NotEmpty(t, rec.Warnings)
	assert.Contains(t, rec.Warnings[0], "no date recognized")
	assert.True(t, rec.IsValid)
}

func TestParsePunchTextConfusableGlyphs(t *testing.T) {
	rec := ParsePunchText("3月15日 O9:OO l8:3O", punchRef)

	assert.Equal(t, []string{"09:00", "18:30"}, rec.Times)
	assert.True(t, rec.IsValid)
}

func TestParsePunchTextSingleTime(t *testing.T) {
	rec := ParsePunchText("3月15日 09:00", punchRef)

	assert.Equal(t, "09:00", rec.StartTime)
	assert.Empty(t, rec.EndTime)
	assert.False(t, rec.IsValid)
	assert.Contains(t, rec.Warnings, WarnSingleTime)
}

func TestParsePunchTextNoTimes(t *testing.T) {
	rec := ParsePunchText("3月15日 考勤异常", punchRef)

	assert.Empty(t, rec.Times)
	assert.False(t, rec.IsValid)
	assert.Contains(t, rec.Warnings, WarnNoPunches)
}

func TestExtractTimesSortsAndDeduplicates(t *testing.T) {
	times := ExtractTimes("18:30 09:00 12:15 09:00")

	assert.Equal(t, []string{"09:00", "12:15", "18:30"}, times)
}

func TestExtractTimesDropsOutOfRange(t *testing.T) {
	// Invalid hours or minutes are discarded, never clamped.
	times := ExtractTimes("25:00 09:61 24:10 09:30")

	assert.Equal(t, []string{"09:30"}, times)
}

func TestExtractTimesSeparatorVariants(t *testing.T) {
	times := ExtractTimes("09：00 和 12.30 和 18 : 45")

	assert.Equal(t, []string{"09:00", "12:30", "18:45"}, times)
}

func TestExtractTimesEmpty(t *testing.T) {
	assert.Empty(t, ExtractTimes(""))
	assert.Empty(t, ExtractTimes("无打卡记录"))
}
