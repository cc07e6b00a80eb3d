package report

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/domain/report"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/validator"
	historyService "github.com/shiftsense/attendance-engine-go/internal/service/history"
	"github.com/shiftsense/attendance-engine-go/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "emp-1"

type fakeGateway struct {
	sheetsFn func(ctx context.Context, start, end time.Time) ([]attendance.Record, error)
}

func (f *fakeGateway) ClockIn(ctx context.Context, note string) (attendance.Record, error) {
	panic("not used")
}

func (f *fakeGateway) StartBreak(ctx context.Context, note string) (attendance.Record, error) {
	panic("not used")
}

func (f *fakeGateway) EndBreak(ctx context.Context, note string) (attendance.Record, error) {
	panic("not used")
}

func (f *fakeGateway) ClockOut(ctx context.Context, note string) (attendance.Record, error) {
	panic("not used")
}

func (f *fakeGateway) Today(ctx context.Context) (*attendance.Record, attendance.ActionStates, error) {
	return nil, attendance.ActionStates{}, nil
}

func (f *fakeGateway) Sheets(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	if f.sheetsFn != nil {
		return f.sheetsFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeGateway) Day(ctx context.Context, date time.Time) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeGateway) EmployeesStatus(ctx context.Context) (attendance.StatusBoard, error) {
	panic("not used")
}

func authedContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"employee_id": testEmployeeID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func workedDay(date time.Time, clockIn, clockOut time.Duration, breaks ...time.Duration) attendance.Record {
	in := date.Add(clockIn)
	out := date.Add(clockOut)
	rec := attendance.Record{
		ID:         "rec-" + date.Format("20060102"),
		EmployeeID: testEmployeeID,
		Date:       date,
		ClockIn:    &in,
		ClockOut:   &out,
		Status:     attendance.StatusOut,
	}
	if len(breaks) == 2 {
		bs := date.Add(breaks[0])
		be := date.Add(breaks[1])
		rec.BreakStart = &bs
		rec.BreakEnd = &be
	}
	return rec
}

func TestWorkedHours(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	nine := date.Add(9 * time.Hour)

	cases := []struct {
		name   string
		record attendance.Record
		want   float64
	}{
		{
			name:   "full day with half hour break",
			record: workedDay(date, 9*time.Hour, 17*time.Hour, 12*time.Hour, 12*time.Hour+30*time.Minute),
			want:   7.5,
		},
		{
			name:   "full day without break",
			record: workedDay(date, 9*time.Hour, 17*time.Hour),
			want:   8,
		},
		{
			name:   "rounds to one decimal",
			record: workedDay(date, 9*time.Hour, 17*time.Hour+20*time.Minute),
			want:   8.3,
		},
		{
			name:   "open day counts zero",
			record: attendance.Record{Date: date, ClockIn: &nine, Status: attendance.StatusIn},
			want:   0,
		},
		{
			name:   "empty record counts zero",
			record: attendance.Record{Date: date},
			want:   0,
		},
		{
			name: "open break is not subtracted",
			record: func() attendance.Record {
				rec := workedDay(date, 9*time.Hour, 17*time.Hour)
				noon := date.Add(12 * time.Hour)
				rec.BreakStart = &noon
				return rec
			}(),
			want: 8,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, WorkedHours(c.record))
		})
	}
}

func newTestService(gateway *fakeGateway, capacity float64) (report.ReportService, *memory.Registry) {
	registry := memory.NewRegistry()
	history := historyService.NewHistoryService(gateway, registry, nil)
	return NewReportService(history, nil, registry, capacity), registry
}

func TestHoursWeek(t *testing.T) {
	// Arrange: two completed days inside the current week.
	today := attendance.DateOf(time.Now())
	gateway := &fakeGateway{
		sheetsFn: func(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
			return []attendance.Record{
				workedDay(today.AddDate(0, 0, -1), 9*time.Hour, 17*time.Hour, 12*time.Hour, 12*time.Hour+30*time.Minute),
				workedDay(today.AddDate(0, 0, -2), 10*time.Hour, 16*time.Hour),
			}, nil
		},
	}
	service, _ := newTestService(gateway, 8)

	// Act
	result, err := service.Hours(authedContext(t), report.HoursRequest{Kind: attendance.WindowWeek})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, attendance.WindowWeek, result.Kind)
	require.Len(t, result.Days, attendance.WeekSize)
	assert.InDelta(t, 13.5, result.TotalHours, 0.001)

	// Days without a record still chart as zero-hour bars.
	zeroDays := 0
	for _, day := range result.Days {
		assert.Equal(t, 8.0, day.CapacityHours)
		if day.WorkedHours == 0 {
			zeroDays++
		}
	}
	assert.Equal(t, attendance.WeekSize-2, zeroDays)

	// Weekly labels are weekday abbreviations.
	last := result.Days[len(result.Days)-1]
	assert.Equal(t, today.Format("Mon"), last.Label)
	assert.Equal(t, today.Format("2006-01-02"), last.Date)
}

func TestHoursMonthLabels(t *testing.T) {
	gateway := &fakeGateway{}
	service, _ := newTestService(gateway, 8)

	result, err := service.Hours(authedContext(t), report.HoursRequest{Kind: attendance.WindowMonth})

	require.NoError(t, err)
	require.NotEmpty(t, result.Days)
	assert.Equal(t, "1", result.Days[0].Label)
	assert.Equal(t, 0.0, result.TotalHours)
}

func TestHoursValidatesRequest(t *testing.T) {
	service, _ := newTestService(&fakeGateway{}, 8)

	_, err := service.Hours(authedContext(t), report.HoursRequest{Kind: attendance.WindowWeek, Offset: -1})

	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
}

type fakeTracker struct {
	today attendance.TodayResponse
}

func (f *fakeTracker) Today(ctx context.Context) (attendance.TodayResponse, error) {
	return f.today, nil
}

func (f *fakeTracker) ClockIn(ctx context.Context, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	panic("not used")
}

func (f *fakeTracker) StartBreak(ctx context.Context, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	panic("not used")
}

func (f *fakeTracker) EndBreak(ctx context.Context, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	panic("not used")
}

func (f *fakeTracker) ClockOut(ctx context.Context, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	panic("not used")
}

func (f *fakeTracker) ResetSession(ctx context.Context) error {
	panic("not used")
}

func TestDashboardBundlesAllPanels(t *testing.T) {
	today := attendance.DateOf(time.Now())
	gateway := &fakeGateway{
		sheetsFn: func(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
			return []attendance.Record{workedDay(today, 9*time.Hour, 17*time.Hour)}, nil
		},
	}
	registry := memory.NewRegistry()
	history := historyService.NewHistoryService(gateway, registry, nil)
	tracker := &fakeTracker{
		today: attendance.TodayResponse{
			Availability: attendance.AvailabilityResponse{CanClockIn: true},
		},
	}
	service := NewReportService(history, tracker, registry, 8)

	result, err := service.Dashboard(authedContext(t))

	require.NoError(t, err)
	assert.True(t, result.Today.Availability.CanClockIn)
	assert.Equal(t, attendance.WindowWeek, result.Week.Kind)
	assert.Equal(t, attendance.WindowMonth, result.Month.Kind)
	assert.InDelta(t, 8.0, result.Week.TotalHours, 0.001)
}

func TestExportMonthProducesWorkbook(t *testing.T) {
	today := attendance.DateOf(time.Now())
	gateway := &fakeGateway{
		sheetsFn: func(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
			return []attendance.Record{
				workedDay(today, 9*time.Hour, 17*time.Hour, 12*time.Hour, 12*time.Hour+30*time.Minute),
			}, nil
		},
	}
	service, _ := newTestService(gateway, 8)

	file, err := service.ExportMonth(authedContext(t), 0)

	require.NoError(t, err)
	assert.Contains(t, file.Name, today.Format("2006-01"))
	assert.NotEmpty(t, file.Content)
}
