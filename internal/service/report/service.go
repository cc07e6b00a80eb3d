package report

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/domain/report"
	"github.com/shiftsense/attendance-engine-go/internal/service/tracker"
	"github.com/shiftsense/attendance-engine-go/internal/store/memory"
)

// ReportServiceImpl aggregates worked hours from the session cache.
// Each report first routes through the history service so the cache is
// guaranteed to cover the requested window before any math runs.
type ReportServiceImpl struct {
	historyService attendance.HistoryService
	trackerService attendance.TrackerService
	registry       *memory.Registry
	capacityHours  float64
}

func NewReportService(
	historyService attendance.HistoryService,
	trackerService attendance.TrackerService,
	registry *memory.Registry,
	capacityHours float64,
) report.ReportService {
	return &ReportServiceImpl{
		historyService: historyService,
		trackerService: trackerService,
		registry:       registry,
		capacityHours:  capacityHours,
	}
}

// Hours implements report.ReportService.
func (s *ReportServiceImpl) Hours(ctx context.Context, req report.HoursRequest) (report.HoursResponse, error) {
	if err := req.Validate(); err != nil {
		return report.HoursResponse{}, err
	}

	if _, err := s.historyService.LoadPage(ctx, attendance.PageRequest{
		Kind:   req.Kind,
		Offset: req.Offset,
	}); err != nil {
		return report.HoursResponse{}, err
	}

	employeeID, err := tracker.ClaimsEmployeeID(ctx)
	if err != nil {
		return report.HoursResponse{}, err
	}
	store := s.registry.For(employeeID)

	window := attendance.Window{Kind: req.Kind, Offset: req.Offset}
	now := time.Now()
	start, end := window.Bounds(now)

	response := report.HoursResponse{
		Kind:      req.Kind,
		Offset:    req.Offset,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Days:      make([]report.DaySummary, 0, attendance.WeekSize),
	}

	var total float64
	for _, day := range window.Days(now) {
		worked := 0.0
		if record, ok := store.RecordOn(day); ok {
			worked = WorkedHours(record)
		}
		total += worked
		response.Days = append(response.Days, report.DaySummary{
			Label:         dayLabel(req.Kind, day),
			Date:          day.Format("2006-01-02"),
			WorkedHours:   worked,
			CapacityHours: s.capacityHours,
		})
	}
	response.TotalHours = round1(total)

	return response, nil
}

// Dashboard implements report.ReportService. The three panels hit
// independent upstream endpoints, so they are fetched concurrently and
// the first failure cancels the rest.
func (s *ReportServiceImpl) Dashboard(ctx context.Context) (report.DashboardResponse, error) {
	var response report.DashboardResponse

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		today, err := s.trackerService.Today(ctx)
		if err != nil {
			return err
		}
		response.Today = today
		return nil
	})

	g.Go(func() error {
		week, err := s.Hours(ctx, report.HoursRequest{Kind: attendance.WindowWeek})
		if err != nil {
			return err
		}
		response.Week = week
		return nil
	})

	g.Go(func() error {
		month, err := s.Hours(ctx, report.HoursRequest{Kind: attendance.WindowMonth})
		if err != nil {
			return err
		}
		response.Month = month
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.DashboardResponse{}, err
	}

	return response, nil
}

// WorkedHours is the net time on the clock for one day, rounded to one
// decimal. Open or empty days count as zero; a completed break is
// subtracted, and a clock-out recorded before the clock-in clamps to
// zero instead of going negative.
func WorkedHours(record attendance.Record) float64 {
	if record.ClockIn == nil || record.ClockOut == nil {
		return 0
	}

	span := record.ClockOut.Sub(*record.ClockIn)
	if record.BreakStart != nil && record.BreakEnd != nil {
		span -= record.BreakEnd.Sub(*record.BreakStart)
	}
	if span < 0 {
		span = 0
	}
	return round1(span.Hours())
}

func round1(hours float64) float64 {
	return math.Round(hours*10) / 10
}

// dayLabel picks the chart axis label: weekday abbreviations for a
// weekly window, day-of-month numbers for a monthly one.
func dayLabel(kind string, day time.Time) string {
	if kind == attendance.WindowWeek {
		return day.Format("Mon")
	}
	return day.Format("2")
}
