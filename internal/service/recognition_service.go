package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sulik0/woking-time-record/internal/calendar"
	"github.com/sulik0/woking-time-record/internal/models"
	"github.com/sulik0/woking-time-record/internal/ocr"
	"github.com/sulik0/woking-time-record/internal/overtime"
	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
	"github.com/sulik0/woking-time-record/pkg/jobs"
)

// Recognizer is the port to the external OCR engine. Implementations may
// fail or hang; the service bounds every call with a timeout.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Recognition job lifecycle states.
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusFailed     = "failed"
)

// RecognitionJob tracks one queued screenshot through recognition and parse.
type RecognitionJob struct {
	ID         string                    `json:"id"`
	Status     string                    `json:"status"`
	Result     *models.ParsedPunchRecord `json:"result,omitempty"`
	Error      string                    `json:"error,omitempty"`
	EnqueuedAt time.Time                 `json:"enqueued_at"`
	FinishedAt *time.Time                `json:"finished_at,omitempty"`
}

// RecognitionConfig bounds engine calls and the worker pool.
type RecognitionConfig struct {
	Timeout time.Duration
	Workers int
	Retries int
}

// RecognitionService turns OCR text (or images, via the engine) into parsed
// punch and statistics records. The parsers themselves are pure; this service
// adds the engine boundary, metrics, and the async queue.
type RecognitionService struct {
	recognizer Recognizer
	metrics    *MetricsService
	logger     *zap.Logger
	config     RecognitionConfig

	queue   *jobs.Queue
	mu      sync.RWMutex
	results map[string]*RecognitionJob
}

// NewRecognitionService constructs the recognition service.
func NewRecognitionService(recognizer Recognizer, metrics *MetricsService, logger *zap.Logger, config RecognitionConfig) *RecognitionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}

	s := &RecognitionService{
		recognizer: recognizer,
		metrics:    metrics,
		logger:     logger,
		config:     config,
		results:    make(map[string]*RecognitionJob),
	}
	s.queue = jobs.NewQueue("recognition", s.processJob, jobs.QueueConfig{
		Workers:    config.Workers,
		MaxRetries: config.Retries,
		Logger:     logger,
	})
	return s
}

// Start launches the background workers.
func (s *RecognitionService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the background workers.
func (s *RecognitionService) Stop() {
	s.queue.Stop()
}

// ParsePunch extracts a punch record from already-recognized text. Any text,
// including empty, is valid input; quality is reported through warnings.
func (s *RecognitionService) ParsePunch(text string, ref time.Time) models.ParsedPunchRecord {
	rec := ocr.ParsePunchText(text, ref)
	s.metrics.CountParse("punch", rec.IsValid)
	return rec
}

// ParseStats extracts and reconciles a statistics record. The workday count
// for the parsed month comes from the calendar policy, never from the text.
func (s *RecognitionService) ParseStats(text string, ref time.Time) models.ParsedStatsRecord {
	rec := ocr.ParseStatsText(text, ref)
	anchor := time.Date(rec.Year, time.Month(rec.Month), 1, 0, 0, 0, 0, time.UTC)
	rec.Workdays = calendar.WorkdaysInMonth(anchor)
	rec = overtime.Reconcile(rec)
	s.metrics.CountParse("stats", rec.IsValid)
	return rec
}

// RecognizePunch runs the OCR engine on the image under the configured
// timeout and parses the resulting text. Engine failure or expiry surfaces as
// a retry-eligible recognition error, never a hang.
func (s *RecognitionService) RecognizePunch(ctx context.Context, image []byte, ref time.Time) (models.ParsedPunchRecord, error) {
	if s.recognizer == nil {
		return models.ParsedPunchRecord{}, appErrors.Clone(appErrors.ErrRecognition, "no recognition engine configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	text, err := s.recognizer.Recognize(ctx, image)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return models.ParsedPunchRecord{}, appErrors.Wrap(err, appErrors.ErrRecognition.Code, appErrors.ErrRecognition.Status, "recognition timed out, try a clearer image or manual entry")
		}
		return models.ParsedPunchRecord{}, appErrors.Wrap(err, appErrors.ErrRecognition.Code, appErrors.ErrRecognition.Status, appErrors.ErrRecognition.Message)
	}

	return s.ParsePunch(text, ref), nil
}

// EnqueuePunch queues an image for background recognition and returns the
// job. Poll Job for the outcome.
func (s *RecognitionService) EnqueuePunch(image []byte, ref time.Time) (*RecognitionJob, error) {
	job := &RecognitionJob{
		ID:         uuid.NewString(),
		Status:     JobStatusQueued,
		EnqueuedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.results[job.ID] = job
	s.mu.Unlock()

	err := s.queue.Enqueue(jobs.Job{ID: job.ID, Image: image, ReferenceDate: ref})
	if err != nil {
		s.mu.Lock()
		delete(s.results, job.ID)
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue recognition job")
	}
	return s.snapshotJob(job.ID), nil
}

// Job returns the current state of a queued recognition job.
func (s *RecognitionService) Job(id string) (*RecognitionJob, error) {
	job := s.snapshotJob(id)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "recognition job not found")
	}
	return job, nil
}

func (s *RecognitionService) processJob(ctx context.Context, job jobs.Job) error {
	s.setJobStatus(job.ID, JobStatusProcessing, nil, "")

	rec, err := s.RecognizePunch(ctx, job.Image, job.ReferenceDate)
	if err != nil {
		if job.Attempt < s.config.Retries {
			s.setJobStatus(job.ID, JobStatusQueued, nil, "")
			return err
		}
		s.finishJob(job.ID, JobStatusFailed, nil, err.Error())
		return nil
	}

	s.finishJob(job.ID, JobStatusDone, &rec, "")
	return nil
}

func (s *RecognitionService) setJobStatus(id, status string, result *models.ParsedPunchRecord, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.results[id]; ok {
		job.Status = status
		job.Result = result
		job.Error = errMsg
	}
}

func (s *RecognitionService) finishJob(id, status string, result *models.ParsedPunchRecord, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.results[id]; ok {
		job.Status = status
		job.Result = result
		job.Error = errMsg
		now := time.Now().UTC()
		job.FinishedAt = &now
	}
}

func (s *RecognitionService) snapshotJob(id string) *RecognitionJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.results[id]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}
