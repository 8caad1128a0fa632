package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sulik0/woking-time-record/internal/service"
	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
	"github.com/sulik0/woking-time-record/pkg/response"
)

// maxImageBytes caps uploaded screenshot size.
const maxImageBytes = 8 << 20

// RecognitionHandler exposes OCR text parsing and image recognition.
type RecognitionHandler struct {
	recognition *service.RecognitionService
}

// NewRecognitionHandler constructs the handler.
func NewRecognitionHandler(recognition *service.RecognitionService) *RecognitionHandler {
	return &RecognitionHandler{recognition: recognition}
}

type parseTextRequest struct {
	Text          string `json:"text"`
	ReferenceDate string `json:"reference_date"`
	// Year and Month override the reference date for stats parses when the
	// screenshot is known to belong to a specific month.
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r parseTextRequest) reference() time.Time {
	if r.Year > 0 && r.Month >= 1 && r.Month <= 12 {
		return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
	}
	return referenceDate(r.ReferenceDate)
}

// ParsePunch godoc
// @Summary Parse punch screenshot text
// @Tags Recognition
// @Accept json
// @Produce json
// @Param payload body parseTextRequest true "Raw OCR text"
// @Success 200 {object} response.Envelope
// @Router /recognition/punch [post]
func (h *RecognitionHandler) ParsePunch(c *gin.Context) {
	var req parseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}

	rec := h.recognition.ParsePunch(req.Text, referenceDate(req.ReferenceDate))
	response.JSON(c, http.StatusOK, rec, nil)
}

// ParseStats godoc
// @Summary Parse statistics screenshot text
// @Tags Recognition
// @Accept json
// @Produce json
// @Param payload body parseTextRequest true "Raw OCR text"
// @Success 200 {object} response.Envelope
// @Router /recognition/stats [post]
func (h *RecognitionHandler) ParseStats(c *gin.Context) {
	var req parseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}

	rec := h.recognition.ParseStats(req.Text, req.reference())
	response.JSON(c, http.StatusOK, rec, nil)
}

// RecognizePunch godoc
// @Summary Recognize a punch screenshot image
// @Tags Recognition
// @Accept octet-stream
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /recognition/punch/image [post]
func (h *RecognitionHandler) RecognizePunch(c *gin.Context) {
	image, err := readImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	rec, err := h.recognition.RecognizePunch(c.Request.Context(), image, referenceDate(c.Query("reference_date")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rec, nil)
}

// EnqueuePunch godoc
// @Summary Queue a punch screenshot for background recognition
// @Tags Recognition
// @Accept octet-stream
// @Produce json
// @Success 202 {object} response.Envelope
// @Router /recognition/punch/jobs [post]
func (h *RecognitionHandler) EnqueuePunch(c *gin.Context) {
	image, err := readImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	job, err := h.recognition.EnqueuePunch(image, referenceDate(c.Query("reference_date")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// Job godoc
// @Summary Poll a queued recognition job
// @Tags Recognition
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /recognition/punch/jobs/{id} [get]
func (h *RecognitionHandler) Job(c *gin.Context) {
	job, err := h.recognition.Job(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

func readImage(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxImageBytes {
			return nil, appErrors.Clone(appErrors.ErrValidation, "image too large")
		}
		f, err := file.Open()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read image")
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImageBytes))
	}

	image, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImageBytes))
	if err != nil || len(image) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing image payload")
	}
	return image, nil
}
