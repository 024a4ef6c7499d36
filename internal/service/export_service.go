package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/openroutine/timetable-api/internal/models"
	appErrors "github.com/openroutine/timetable-api/pkg/errors"
	"github.com/openroutine/timetable-api/pkg/export"
)

type exportTimetableReader interface {
	ListDetailed(ctx context.Context, tenantID string, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the stored timetable as CSV or PDF.
type ExportService struct {
	timetable exportTimetableReader
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(timetable exportTimetableReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		timetable: timetable,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

var exportHeaders = []string{"Day", "Slot", "Group", "Subject", "Type", "Room", "Faculty"}

// Export renders the tenant's timetable in the requested format.
func (s *ExportService) Export(ctx context.Context, tenantID, format string) (*ExportFile, error) {
	entries, err := s.timetable.ListDetailed(ctx, tenantID, models.TimetableFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable has been generated yet")
	}

	data := export.Dataset{Headers: exportHeaders}
	for _, e := range entries {
		kind := "Lecture"
		if e.IsLab {
			kind = "Lab"
		}
		faculty := ""
		if e.FacultyName != nil {
			faculty = *e.FacultyName
		}
		data.Rows = append(data.Rows, map[string]string{
			"Day":     e.Day,
			"Slot":    strconv.Itoa(e.Slot),
			"Group":   e.GroupName,
			"Subject": e.SubjectName,
			"Type":    kind,
			"Room":    e.RoomName,
			"Faculty": faculty,
		})
	}

	switch format {
	case "csv":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: "timetable.csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(data, "Weekly Timetable")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: "timetable.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
