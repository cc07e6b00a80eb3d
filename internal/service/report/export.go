package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/domain/report"
	"github.com/shiftsense/attendance-engine-go/internal/service/tracker"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Timesheet"

// ExportMonth implements report.ReportService.
func (s *ReportServiceImpl) ExportMonth(ctx context.Context, offset int) (report.ExportFile, error) {
	hours, err := s.Hours(ctx, report.HoursRequest{
		Kind:   attendance.WindowMonth,
		Offset: offset,
	})
	if err != nil {
		return report.ExportFile{}, err
	}

	employeeID, err := tracker.ClaimsEmployeeID(ctx)
	if err != nil {
		return report.ExportFile{}, err
	}
	store := s.registry.For(employeeID)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(exportSheet, "A1", "MONTHLY TIMESHEET")
	f.MergeCell(exportSheet, "A1", "F1")
	f.SetCellStyle(exportSheet, "A1", "F1", headerStyle)
	f.SetRowHeight(exportSheet, 1, 25)

	f.SetCellValue(exportSheet, "A3", "Period:")
	f.SetCellValue(exportSheet, "B3", fmt.Sprintf("%s to %s", hours.StartDate, hours.EndDate))

	headers := []string{"Date", "Clock In", "Clock Out", "Break", "Worked Hours", "Note"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(exportSheet, cell, h)
	}
	f.SetCellStyle(exportSheet, "A5", "F5", headerStyle)

	row := 6
	for _, day := range hours.Days {
		date, _ := time.Parse("2006-01-02", day.Date)

		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), day.Date)
		if record, ok := store.RecordOn(date); ok {
			f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), clockLabel(record.ClockIn))
			f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), clockLabel(record.ClockOut))
			f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), breakLabel(record))
			if record.Note != nil {
				f.SetCellValue(exportSheet, fmt.Sprintf("F%d", row), *record.Note)
			}
		}
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), day.WorkedHours)
		row++
	}

	f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), hours.TotalHours)
	f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), headerStyle)

	f.SetColWidth(exportSheet, "A", "A", 12)
	f.SetColWidth(exportSheet, "B", "E", 14)
	f.SetColWidth(exportSheet, "F", "F", 30)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to render export workbook: %w", err)
	}

	return report.ExportFile{
		Name:    fmt.Sprintf("timesheet_%s_%s.xlsx", hours.StartDate[:7], uuid.NewString()[:8]),
		Content: buf.Bytes(),
	}, nil
}

func clockLabel(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

func breakLabel(record attendance.Record) string {
	if record.BreakStart == nil {
		return "-"
	}
	if record.BreakEnd == nil {
		return fmt.Sprintf("%s - ...", record.BreakStart.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", record.BreakStart.Format("15:04"), record.BreakEnd.Format("15:04"))
}
