package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── export business errors ──

var ErrExportGenerateFail = errors.New("failed to generate Excel file")

// ExportService renders capacity rollups as downloadable files.
//
// Design notes:
//   - only the weekly capacity report is exported for now
//   - output is returned as a bytes.Buffer; the handler sets the HTTP
//     headers and streams it
type ExportService interface {
	// ExportWeeklyCapacity renders the weekly summary as an .xlsx workbook.
	// Returns the file content and a suggested filename.
	ExportWeeklyCapacity(ctx context.Context, weekStart time.Time) (*bytes.Buffer, string, error)
}

type exportService struct {
	capacity CapacityService
	logger   *zap.Logger
}

// NewExportService creates an ExportService on top of the aggregator.
func NewExportService(capacity CapacityService, logger *zap.Logger) ExportService {
	return &exportService{capacity: capacity, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportWeeklyCapacity
// ════════════════════════════════════════════════════════════
//
// Layout:
//   | Name | Email | Weekly Capacity | Allocated | Completed | Available | Utilization % |
// one row per active user, plus a title row with the week range.

func (s *exportService) ExportWeeklyCapacity(ctx context.Context, weekStart time.Time) (*bytes.Buffer, string, error) {
	summary, err := s.capacity.WeeklySummary(ctx, weekStart)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Weekly Capacity"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "B", 24)
	f.SetColWidth(sheetName, "C", "G", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title row
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Capacity %s to %s", summary.WeekStart, summary.WeekEnd))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// header row
	headers := []string{"Name", "Email", "Weekly Capacity", "Allocated", "Completed", "Available", "Utilization %"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), h)
	}
	f.SetCellStyle(sheetName, "A2", "G2", headerStyle)

	// data rows
	row := 3
	for _, u := range summary.Users {
		values := []interface{}{
			u.User.Name,
			u.User.Email,
			u.WeeklyCapacity,
			u.AllocatedHours,
			u.CompletedHours,
			u.AvailableHours,
			u.Utilization,
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write Excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("capacity_%s.xlsx", summary.WeekStart)
	return buf, filename, nil
}
