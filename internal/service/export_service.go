package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
	"github.com/sulik0/woking-time-record/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportService renders the monthly overtime report.
type ExportService struct {
	records *RecordService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(records *RecordService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		records: records,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// ExportResult carries the rendered document.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// MonthlyReport renders the records of one month in the requested format.
func (s *ExportService) MonthlyReport(ctx context.Context, year, month int, format string) (*ExportResult, error) {
	format = strings.ToLower(format)
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	records, err := s.records.RecordsForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Start", "End", "Day Type", "Worked Minutes", "Overtime Minutes"},
	}
	for _, rec := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":             rec.Date,
			"Start":            rec.StartTime,
			"End":              rec.EndTime,
			"Day Type":         string(rec.DayType),
			"Worked Minutes":   strconv.Itoa(rec.WorkedMinutes),
			"Overtime Minutes": strconv.Itoa(rec.OvertimeMinutes),
		})
	}

	title := fmt.Sprintf("Overtime Report %04d-%02d", year, month)
	var content []byte
	contentType := "text/csv"
	switch format {
	case ExportFormatCSV:
		content, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		content, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("overtime-%04d-%02d.%s", year, month, format),
		ContentType: contentType,
		Content:     content,
	}, nil
}
