package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sulik0/woking-time-record/internal/service"
	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
	"github.com/sulik0/woking-time-record/pkg/response"
)

// RecordHandler exposes the confirmed record collection.
type RecordHandler struct {
	records *service.RecordService
	exports *service.ExportService
}

// NewRecordHandler constructs the handler.
func NewRecordHandler(records *service.RecordService, exports *service.ExportService) *RecordHandler {
	return &RecordHandler{records: records, exports: exports}
}

// List godoc
// @Summary List attendance records
// @Tags Records
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param sort query string false "Sort order (date)"
// @Success 200 {object} response.Envelope
// @Router /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	req := service.ListRecordsRequest{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 50),
		Sort:     c.Query("sort"),
	}

	records, pagination, err := h.records.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Create godoc
// @Summary Create an attendance record
// @Tags Records
// @Accept json
// @Produce json
// @Param payload body service.CreateRecordRequest true "Record"
// @Success 201 {object} response.Envelope
// @Router /records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var req service.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}

	record, err := h.records.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Delete godoc
// @Summary Delete an attendance record
// @Tags Records
// @Param id path string true "Record ID"
// @Success 204
// @Router /records/{id} [delete]
func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.records.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Summary godoc
// @Summary Monthly overtime summary
// @Tags Records
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /records/summary [get]
func (h *RecordHandler) Summary(c *gin.Context) {
	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))

	summary, err := h.records.MonthlySummary(c.Request.Context(), year, month, now)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Export godoc
// @Summary Export a monthly overtime report
// @Tags Records
// @Produce octet-stream
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Param format query string true "csv or pdf"
// @Success 200
// @Router /records/export [get]
func (h *RecordHandler) Export(c *gin.Context) {
	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))

	result, err := h.exports.MonthlyReport(c.Request.Context(), year, month, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
