package cron

import (
	"context"
	"testing"
	"time"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	board attendance.StatusBoard
	err   error
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
	panic("not used")
}

func (f *fakeGateway) Sheets(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	panic("not used")
}

func (f *fakeGateway) Day(ctx context.Context, date time.Time) (*attendance.Record, error) {
	panic("not used")
}

func (f *fakeGateway) EmployeesStatus(ctx context.Context) (attendance.StatusBoard, error) {
	return f.board, f.err
}

func TestSchedulerRunOnce(t *testing.T) {
	scheduler := NewScheduler()
	runs := 0
	scheduler.Add(Job{
		Name:     "counting",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			runs++
			return nil
		},
	})

	scheduler.RunOnce(context.Background())
	scheduler.RunOnce(context.Background())

	assert.Equal(t, 2, runs)
}

func TestRefreshStatusBoard(t *testing.T) {
	registry := memory.NewRegistry()
	jobs := NewRefreshJobs(&fakeGateway{
		board: attendance.StatusBoard{In: 5, FetchedAt: time.Now()},
	}, registry, time.Hour)

	err := jobs.RefreshStatusBoard(context.Background())

	require.NoError(t, err)
	board, ok := registry.Board()
	require.True(t, ok)
	assert.Equal(t, 5, board.In)
}

func TestRefreshStatusBoardFailureKeepsPreviousBoard(t *testing.T) {
	registry := memory.NewRegistry()
	registry.SetBoard(attendance.StatusBoard{In: 3, FetchedAt: time.Now()})
	jobs := NewRefreshJobs(&fakeGateway{
		err: &attendance.RemoteError{StatusCode: 502, Message: "down"},
	}, registry, time.Hour)

	err := jobs.RefreshStatusBoard(context.Background())

	assert.Error(t, err)
	board, ok := registry.Board()
	require.True(t, ok)
	assert.Equal(t, 3, board.In)
}

func TestPruneIdleSessions(t *testing.T) {
	registry := memory.NewRegistry()
	registry.For("emp-1")
	jobs := NewRefreshJobs(&fakeGateway{}, registry, 0)

	// With a zero max idle everything just touched is already stale.
	err := jobs.PruneIdleSessions(context.Background())

	require.NoError(t, err)
}
