package service

import (
	"time"

	"github.com/sulik0/woking-time-record/internal/calendar"
	"github.com/sulik0/woking-time-record/internal/models"
	"github.com/sulik0/woking-time-record/internal/overtime"
	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
)

// DayClassification describes one date under the calendar policy.
type DayClassification struct {
	Date             string         `json:"date"`
	DayType          models.DayType `json:"day_type"`
	IsHoliday        bool           `json:"is_holiday"`
	IsShiftedWorkday bool           `json:"is_shifted_workday"`
	IsRestDay        bool           `json:"is_rest_day"`
}

// MonthOutlook summarises the policy figures of one calendar month.
type MonthOutlook struct {
	Year                    int `json:"year"`
	Month                   int `json:"month"`
	Workdays                int `json:"workdays"`
	RequiredOvertimeMinutes int `json:"required_overtime_minutes"`
	RemainingRestDays       int `json:"remaining_rest_days"`
}

// CalendarService exposes the static calendar policy to the HTTP layer.
type CalendarService struct{}

// NewCalendarService constructs the calendar service.
func NewCalendarService() *CalendarService {
	return &CalendarService{}
}

// Day classifies a single date.
func (s *CalendarService) Day(dateStr string) (*DayClassification, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}
	return &DayClassification{
		Date:             date.Format("2006-01-02"),
		DayType:          overtime.Classify(date),
		IsHoliday:        calendar.IsHoliday(date),
		IsShiftedWorkday: calendar.IsShiftedWorkday(date),
		IsRestDay:        calendar.IsRestDay(date),
	}, nil
}

// Month returns the policy outlook for one month; now anchors the
// remaining-rest-days count.
func (s *CalendarService) Month(year, month int, now time.Time) (*MonthOutlook, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
	}
	anchor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	workdays := calendar.WorkdaysInMonth(anchor)
	return &MonthOutlook{
		Year:                    year,
		Month:                   month,
		Workdays:                workdays,
		RequiredOvertimeMinutes: calendar.RequiredOvertimeMinutes(workdays),
		RemainingRestDays:       calendar.RemainingRestDaysInMonth(now, anchor),
	}, nil
}
