package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulik0/woking-time-record/internal/models"
	"github.com/sulik0/woking-time-record/internal/service"
)

type memoryRecordStore struct {
	records []models.TimeRecord
}

func (s *memoryRecordStore) List(ctx context.Context) ([]models.TimeRecord, error) {
	out := make([]models.TimeRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *memoryRecordStore) ReplaceAll(ctx context.Context, records []models.TimeRecord) error {
	s.records = records
	return nil
}

func newRecordRouter(store *memoryRecordStore) *gin.Engine {
	records := service.NewRecordService(store, nil, service.NewMetricsService(), nil, nil)
	exports := service.NewExportService(records, nil)
	h := NewRecordHandler(records, exports)

	r := gin.New()
	r.GET("/records", h.List)
	r.POST("/records", h.Create)
	r.DELETE("/records/:id", h.Delete)
	r.GET("/records/summary", h.Summary)
	r.GET("/records/export", h.Export)
	return r
}

func TestRecordHandlerCreate(t *testing.T) {
	store := &memoryRecordStore{}
	r := newRecordRouter(store)

	w := postJSON(t, r, "/records", gin.H{
		"date":       "2024-03-15",
		"start_time": "09:00",
		"end_time":   "19:00",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data models.TimeRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, models.DayTypeWorkday, envelope.Data.DayType)
	assert.Equal(t, 540, envelope.Data.WorkedMinutes)
	assert.Equal(t, 60, envelope.Data.OvertimeMinutes)
	assert.Len(t, store.records, 1)
}

func TestRecordHandlerCreateRejectsMisorderedTimes(t *testing.T) {
	r := newRecordRouter(&memoryRecordStore{})

	w := postJSON(t, r, "/records", gin.H{
		"date":       "2024-03-15",
		"start_time": "18:00",
		"end_time":   "09:00",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordHandlerListAndDelete(t *testing.T) {
	store := &memoryRecordStore{records: []models.TimeRecord{
		{ID: "r1", Date: "2024-03-15", StartTime: "09:00", EndTime: "19:00", DayType: models.DayTypeWorkday, WorkedMinutes: 540, OvertimeMinutes: 60},
		{ID: "r2", Date: "2024-03-16", StartTime: "10:00", EndTime: "15:00", DayType: models.DayTypeRestDay, WorkedMinutes: 240, OvertimeMinutes: 240},
	}}
	r := newRecordRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data       []models.TimeRecord `json:"data"`
		Pagination *models.Pagination  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.TotalCount)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/records/r1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, store.records, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/records/r1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordHandlerSummary(t *testing.T) {
	store := &memoryRecordStore{records: []models.TimeRecord{
		{ID: "r1", Date: "2024-03-15", StartTime: "09:00", EndTime: "19:00", DayType: models.DayTypeWorkday, WorkedMinutes: 540, OvertimeMinutes: 60},
	}}
	r := newRecordRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records/summary?year=2024&month=3", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.MonthlySummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	assert.Equal(t, 1, envelope.Data.RecordCount)
	assert.Equal(t, 21, envelope.Data.Workdays)
	assert.Equal(t, 2520, envelope.Data.RequiredOvertimeMinutes)
}

func TestRecordHandlerExport(t *testing.T) {
	store := &memoryRecordStore{records: []models.TimeRecord{
		{ID: "r1", Date: "2024-03-15", StartTime: "09:00", EndTime: "19:00", DayType: models.DayTypeWorkday, WorkedMinutes: 540, OvertimeMinutes: 60},
	}}
	r := newRecordRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records/export?year=2024&month=3&format=csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "overtime-2024-03.csv")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "2024-03-15")
}
