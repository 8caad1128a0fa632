package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulik0/woking-time-record/internal/models"
	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
)

type recordStoreStub struct {
	records []models.TimeRecord
	listErr error
	saveErr error
}

func (s *recordStoreStub) List(ctx context.Context) ([]models.TimeRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.TimeRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *recordStoreStub) ReplaceAll(ctx context.Context, records []models.TimeRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records = records
	return nil
}

func newRecordService(store *recordStoreStub) *RecordService {
	return NewRecordService(store, nil, NewMetricsService(), nil, nil)
}

func TestRecordServiceCreateWorkday(t *testing.T) {
	store := &recordStoreStub{}
	svc := newRecordService(store)

	// 2024-03-15 is a Friday.
	rec, err := svc.Create(context.Background(), CreateRecordRequest{
		Date:      "2024-03-15",
		StartTime: "09:00",
		EndTime:   "19:00",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "2024-03-15", rec.Date)
	assert.Equal(t, models.DayTypeWorkday, rec.DayType)
	assert.Equal(t, 540, rec.WorkedMinutes)
	assert.Equal(t, 60, rec.OvertimeMinutes)
	require.Len(t, store.records, 1)
}

func TestRecordServiceCreateRestDay(t *testing.T) {
	svc := newRecordService(&recordStoreStub{})

	// 2024-03-16 is a Saturday; a five-hour stretch loses the lunch break
	// and every remaining minute is overtime.
	rec, err := svc.Create(context.Background(), CreateRecordRequest{
		Date:      "2024-03-16",
		StartTime: "10:00",
		EndTime:   "15:00",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DayTypeRestDay, rec.DayType)
	assert.Equal(t, 240, rec.WorkedMinutes)
	assert.Equal(t, 240, rec.OvertimeMinutes)
}

func TestRecordServiceCreateShiftedWorkday(t *testing.T) {
	svc := newRecordService(&recordStoreStub{})

	// 2024-02-18 is a Sunday redesignated as a working day.
	rec, err := svc.Create(context.Background(), CreateRecordRequest{
		Date:      "2024-02-18",
		StartTime: "09:00",
		EndTime:   "18:00",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DayTypeWorkday, rec.DayType)
	assert.Equal(t, 0, rec.OvertimeMinutes)
}

func TestRecordServiceCreateValidation(t *testing.T) {
	svc := newRecordService(&recordStoreStub{})

	cases := []struct {
		name string
		req  CreateRecordRequest
	}{
		{"missing fields", CreateRecordRequest{}},
		{"bad date", CreateRecordRequest{Date: "15/03/2024", StartTime: "09:00", EndTime: "18:00"}},
		{"bad time", CreateRecordRequest{Date: "2024-03-15", StartTime: "9am", EndTime: "18:00"}},
		{"end before start", CreateRecordRequest{Date: "2024-03-15", StartTime: "18:00", EndTime: "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestRecordServiceCreateStoreFailure(t *testing.T) {
	svc := newRecordService(&recordStoreStub{saveErr: errors.New("redis down")})

	_, err := svc.Create(context.Background(), CreateRecordRequest{
		Date:      "2024-03-15",
		StartTime: "09:00",
		EndTime:   "18:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func seedRecords() *recordStoreStub {
	return &recordStoreStub{records: []models.TimeRecord{
		{ID: "r3", Date: "2024-03-18", StartTime: "09:00", EndTime: "18:00", DayType: models.DayTypeWorkday, WorkedMinutes: 480, OvertimeMinutes: 0},
		{ID: "r1", Date: "2024-03-15", StartTime: "09:00", EndTime: "19:00", DayType: models.DayTypeWorkday, WorkedMinutes: 540, OvertimeMinutes: 60},
		{ID: "r2", Date: "2024-03-16", StartTime: "10:00", EndTime: "15:00", DayType: models.DayTypeRestDay, WorkedMinutes: 240, OvertimeMinutes: 240},
		{ID: "r4", Date: "2024-04-01", StartTime: "09:00", EndTime: "18:00", DayType: models.DayTypeWorkday, WorkedMinutes: 480, OvertimeMinutes: 0},
	}}
}

func TestRecordServiceListInsertionOrder(t *testing.T) {
	svc := newRecordService(seedRecords())

	records, pagination, err := svc.List(context.Background(), ListRecordsRequest{})
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, "r3", records[0].ID)
	assert.Equal(t, "r4", records[3].ID)
	assert.Equal(t, 4, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)
}

func TestRecordServiceListSortedByDate(t *testing.T) {
	svc := newRecordService(seedRecords())

	records, _, err := svc.List(context.Background(), ListRecordsRequest{Sort: "date"})
	require.NoError(t, err)

	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, recordIDs(records))
}

func TestRecordServiceListPagination(t *testing.T) {
	svc := newRecordService(seedRecords())

	records, pagination, err := svc.List(context.Background(), ListRecordsRequest{Page: 2, PageSize: 3})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "r4", records[0].ID)
	assert.Equal(t, 4, pagination.TotalCount)

	records, _, err = svc.List(context.Background(), ListRecordsRequest{Page: 9, PageSize: 3})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordServiceDelete(t *testing.T) {
	store := seedRecords()
	svc := newRecordService(store)

	require.NoError(t, svc.Delete(context.Background(), "r2"))
	assert.Len(t, store.records, 3)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRecordServiceMonthlySummary(t *testing.T) {
	svc := newRecordService(seedRecords())

	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	summary, err := svc.MonthlySummary(context.Background(), 2024, 3, now)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.RecordCount)
	assert.Equal(t, 1260, summary.WorkedMinutes)
	assert.Equal(t, 300, summary.OvertimeMinutes)
	assert.Equal(t, 21, summary.Workdays)
	assert.Equal(t, 2520, summary.RequiredOvertimeMinutes)
	// March 20 is a Wednesday; rest days left are the weekends of 23/24 and
	// 30/31.
	assert.Equal(t, 4, summary.RemainingRestDays)
}

func TestRecordServiceMonthlySummaryEmptyMonth(t *testing.T) {
	svc := newRecordService(seedRecords())

	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	summary, err := svc.MonthlySummary(context.Background(), 2024, 5, now)
	require.NoError(t, err)

	assert.Zero(t, summary.RecordCount)
	assert.Equal(t, 21, summary.Workdays)
	// Not the current month, so only plain weekends count.
	assert.Equal(t, 8, summary.RemainingRestDays)
}

func TestRecordServiceMonthlySummaryBadMonth(t *testing.T) {
	svc := newRecordService(seedRecords())

	_, err := svc.MonthlySummary(context.Background(), 2024, 13, time.Now())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRecordServiceRecordsForMonth(t *testing.T) {
	svc := newRecordService(seedRecords())

	records, err := svc.RecordsForMonth(context.Background(), 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"r1", "r2", "r3"}, recordIDs(records))
}

func recordIDs(records []models.TimeRecord) []string {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	return ids
}
