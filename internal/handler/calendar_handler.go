package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sulik0/woking-time-record/internal/service"
	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
	"github.com/sulik0/woking-time-record/pkg/response"
)

// CalendarHandler exposes the calendar policy.
type CalendarHandler struct {
	calendar *service.CalendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// Day godoc
// @Summary Classify a single date
// @Tags Calendar
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /calendar/day/{date} [get]
func (h *CalendarHandler) Day(c *gin.Context) {
	result, err := h.calendar.Day(c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Month godoc
// @Summary Month policy outlook
// @Tags Calendar
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month"
// @Success 200 {object} response.Envelope
// @Router /calendar/month/{year}/{month} [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid month"))
		return
	}

	result, err := h.calendar.Month(year, month, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
