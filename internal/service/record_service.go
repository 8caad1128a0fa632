package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sulik0/woking-time-record/internal/calendar"
	"github.com/sulik0/woking-time-record/internal/models"
	"github.com/sulik0/woking-time-record/internal/overtime"
	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
)

type recordStore interface {
	List(ctx context.Context) ([]models.TimeRecord, error)
	ReplaceAll(ctx context.Context, records []models.TimeRecord) error
}

const summaryCachePattern = "summary:*"

// RecordService owns the confirmed attendance records: creation from manual
// entry or an accepted parse, listing, deletion, and the monthly roll-up.
// Records never mutate after creation.
type RecordService struct {
	store     recordStore
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRecordService constructs the record service.
func NewRecordService(store recordStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RecordService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{store: store, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// CreateRecordRequest carries a confirmed entry: either typed in manually or
// accepted from a parse result.
type CreateRecordRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// ListRecordsRequest describes list filters.
type ListRecordsRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Sort     string `json:"sort"`
}

// Create derives the day classification and minute counts for the entry and
// appends it to the stored collection.
func (s *RecordService) Create(ctx context.Context, req CreateRecordRequest) (*models.TimeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record payload")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}

	worked, err := overtime.WorkedMinutes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid time, expected HH:mm")
	}
	// The calculator passes a misordered pair through as negative minutes;
	// persisting such a record would break the TimeRecord invariant, so it is
	// rejected at this boundary instead.
	if worked < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must not be earlier than start_time")
	}

	dayType := overtime.Classify(date)
	record := models.TimeRecord{
		ID:              uuid.NewString(),
		Date:            date.Format("2006-01-02"),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DayType:         dayType,
		WorkedMinutes:   worked,
		OvertimeMinutes: overtime.OvertimeMinutes(worked, dayType),
		CreatedAt:       time.Now().UTC(),
	}

	records, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	records = append(records, record)
	if err := s.saveAll(ctx, records); err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx)
	s.logger.Info("record created",
		zap.String("id", record.ID),
		zap.String("date", record.Date),
		zap.String("day_type", string(record.DayType)),
		zap.Int("overtime_minutes", record.OvertimeMinutes))
	return &record, nil
}

// List returns records in insertion order, or by ascending date when
// sort=date is requested, paginated.
func (s *RecordService) List(ctx context.Context, req ListRecordsRequest) ([]models.TimeRecord, *models.Pagination, error) {
	records, err := s.loadAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	if strings.EqualFold(req.Sort, "date") {
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Date != records[j].Date {
				return records[i].Date < records[j].Date
			}
			return records[i].StartTime < records[j].StartTime
		})
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	total := len(records)
	startIdx := (page - 1) * pageSize
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + pageSize
	if endIdx > total {
		endIdx = total
	}

	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}
	return records[startIdx:endIdx], pagination, nil
}

// Delete removes one record by id.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	records, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "record not found")
	}

	if err := s.saveAll(ctx, kept); err != nil {
		return err
	}
	s.invalidateSummaries(ctx)
	return nil
}

// MonthlySummary aggregates the records of one month against the calendar
// policy. now feeds the remaining-rest-days calculation.
func (s *RecordService) MonthlySummary(ctx context.Context, year, month int, now time.Time) (*models.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
	}

	cacheKey := fmt.Sprintf("summary:%04d-%02d", year, month)
	var cached models.MonthlySummary
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	records, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-%02d", year, month)
	summary := models.MonthlySummary{Year: year, Month: month}
	for _, rec := range records {
		if !strings.HasPrefix(rec.Date, prefix) {
			continue
		}
		summary.RecordCount++
		summary.WorkedMinutes += rec.WorkedMinutes
		summary.OvertimeMinutes += rec.OvertimeMinutes
	}

	anchor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	summary.Workdays = calendar.WorkdaysInMonth(anchor)
	summary.RequiredOvertimeMinutes = calendar.RequiredOvertimeMinutes(summary.Workdays)
	summary.RemainingRestDays = calendar.RemainingRestDaysInMonth(now, anchor)

	if err := s.cache.Set(ctx, cacheKey, summary); err != nil {
		s.logger.Warn("failed to cache monthly summary", zap.String("key", cacheKey), zap.Error(err))
	}
	return &summary, nil
}

// RecordsForMonth returns the stored records of one month sorted by date.
func (s *RecordService) RecordsForMonth(ctx context.Context, year, month int) ([]models.TimeRecord, error) {
	records, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var selected []models.TimeRecord
	for _, rec := range records {
		if strings.HasPrefix(rec.Date, prefix) {
			selected = append(selected, rec)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Date != selected[j].Date {
			return selected[i].Date < selected[j].Date
		}
		return selected[i].StartTime < selected[j].StartTime
	})
	return selected, nil
}

func (s *RecordService) loadAll(ctx context.Context) ([]models.TimeRecord, error) {
	start := time.Now()
	records, err := s.store.List(ctx)
	s.metrics.ObserveStoreOperation("list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load records")
	}
	return records, nil
}

func (s *RecordService) saveAll(ctx context.Context, records []models.TimeRecord) error {
	start := time.Now()
	err := s.store.ReplaceAll(ctx, records)
	s.metrics.ObserveStoreOperation("replace", time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save records")
	}
	return nil
}

func (s *RecordService) invalidateSummaries(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, summaryCachePattern); err != nil {
		s.logger.Warn("failed to invalidate summary cache", zap.Error(err))
	}
}
