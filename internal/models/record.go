package models

import "time"

// DayType classifies a calendar date for overtime accounting.
type DayType string

const (
	DayTypeWorkday DayType = "workday"
	DayTypeRestDay DayType = "restDay"
)

// Valid returns true when the day type is a supported value.
func (d DayType) Valid() bool {
	return d == DayTypeWorkday || d == DayTypeRestDay
}

// TimeRecord is one confirmed attendance entry. Records are immutable after
// creation: dayType and the derived minute counts are frozen at the moment the
// record is accepted, even if the calendar policy changes later.
type TimeRecord struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`       // YYYY-MM-DD
	StartTime       string    `json:"start_time"` // HH:mm
	EndTime         string    `json:"end_time"`   // HH:mm
	DayType         DayType   `json:"day_type"`
	WorkedMinutes   int       `json:"worked_minutes"`
	OvertimeMinutes int       `json:"overtime_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// ParsedPunchRecord is the best-effort result of one punch-screenshot parse.
// It is ephemeral and never persisted as-is.
type ParsedPunchRecord struct {
	Date      string   `json:"date"`
	Times     []string `json:"times"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	IsValid   bool     `json:"is_valid"`
	Warnings  []string `json:"warnings"`
}

// ParsedStatsRecord summarises a statistics screenshot plus the derived
// reconciliation figures. Workdays is supplied from the calendar policy, not
// parsed from text.
type ParsedStatsRecord struct {
	Year            int      `json:"year"`
	Month           int      `json:"month"`
	AvgHours        float64  `json:"avg_hours"`
	AttendanceDays  int      `json:"attendance_days"`
	RestDays        int      `json:"rest_days"`
	Workdays        int      `json:"workdays"`
	TotalHours      float64  `json:"total_hours"`
	CorrectAvgHours float64  `json:"correct_avg_hours"`
	WeekendWorkDays int      `json:"weekend_work_days"`
	IsValid         bool     `json:"is_valid"`
	Warnings        []string `json:"warnings"`
}

// MonthlySummary aggregates the persisted records of one calendar month
// against the required-overtime policy.
type MonthlySummary struct {
	Year                    int `json:"year"`
	Month                   int `json:"month"`
	RecordCount             int `json:"record_count"`
	WorkedMinutes           int `json:"worked_minutes"`
	OvertimeMinutes         int `json:"overtime_minutes"`
	Workdays                int `json:"workdays"`
	RequiredOvertimeMinutes int `json:"required_overtime_minutes"`
	RemainingRestDays       int `json:"remaining_rest_days"`
}

// Pagination captures standard list metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
