package service

import (
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"capacityhub/backend/internal/model"
)

func setupTestExportService() (ExportService, *capacityTestEnv) {
	env := setupTestCapacityService()
	svc := NewExportService(env.svc, zap.NewNop())
	return svc, env
}

func TestExportService_ExportWeeklyCapacity(t *testing.T) {
	svc, env := setupTestExportService()
	env.addUser("user-001", "Dana", 40)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	env.store.assignments["asg-001"] = &model.Assignment{
		AssignmentID:   "asg-001",
		UserID:         "user-001",
		RequestID:      "req-001",
		AssignedDate:   monday,
		AllocatedHours: 8,
		ActualHours:    8,
		Status:         model.AssignmentStatusCompleted,
		WeekStart:      monday,
	}

	buf, filename, err := svc.ExportWeeklyCapacity(context.Background(), monday)
	if err != nil {
		t.Fatalf("export should succeed: %v", err)
	}
	if filename != "capacity_2026-03-02.xlsx" {
		t.Errorf("expected filename capacity_2026-03-02.xlsx, got %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("output should be a readable workbook: %v", err)
	}
	defer f.Close()

	sheet := "Weekly Capacity"
	name, _ := f.GetCellValue(sheet, "A3")
	if name != "Dana" {
		t.Errorf("expected first data row name=Dana, got %q", name)
	}
	allocated, _ := f.GetCellValue(sheet, "D3")
	if allocated != "8" {
		t.Errorf("expected allocated=8, got %q", allocated)
	}
}

func TestExportService_ExportWeeklyCapacity_EmptyWeek(t *testing.T) {
	svc, env := setupTestExportService()
	env.addUser("user-001", "Dana", 40)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	buf, _, err := svc.ExportWeeklyCapacity(context.Background(), monday)
	if err != nil {
		t.Fatalf("export of an empty week should succeed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("workbook should not be empty")
	}
}
