package report

import (
	"context"
)

// ReportService derives worked-hours summaries from cached attendance
// records for chart and export consumption.
type ReportService interface {
	// Hours aggregates per-day worked hours for one reporting window.
	Hours(ctx context.Context, req HoursRequest) (HoursResponse, error)

	// Dashboard returns today's state plus the current weekly and
	// monthly summaries in one call.
	Dashboard(ctx context.Context) (DashboardResponse, error)

	// ExportMonth renders a monthly timesheet workbook.
	ExportMonth(ctx context.Context, offset int) (ExportFile, error)
}
