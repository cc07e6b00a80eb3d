package board

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
	calls int
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
	f.calls++
	return f.board, f.err
}

func TestStatusFetchesWhenCacheEmpty(t *testing.T) {
	gateway := &fakeGateway{
		board: attendance.StatusBoard{In: 4, Total: 10, FetchedAt: time.Now()},
	}
	registry := memory.NewRegistry()
	service := NewBoardService(gateway, registry, time.Minute)

	result, err := service.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, result.In)
	assert.Equal(t, 1, gateway.calls)

	// The fetched board is now cached for the refresh window.
	_, ok := registry.Board()
	assert.True(t, ok)
}

func TestStatusServesFreshCacheWithoutFetch(t *testing.T) {
	gateway := &fakeGateway{}
	registry := memory.NewRegistry()
	registry.SetBoard(attendance.StatusBoard{In: 2, FetchedAt: time.Now()})
	service := NewBoardService(gateway, registry, time.Minute)

	result, err := service.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.In)
	assert.Equal(t, 0, gateway.calls)
}

func TestStatusFallsBackToStaleCacheOnFetchError(t *testing.T) {
	gateway := &fakeGateway{
		err: &attendance.RemoteError{StatusCode: 502, Message: "upstream down"},
	}
	registry := memory.NewRegistry()
	registry.SetBoard(attendance.StatusBoard{In: 7, FetchedAt: time.Now().Add(-time.Hour)})
	service := NewBoardService(gateway, registry, time.Minute)

	result, err := service.Status(context.Background())

	require.NoError(t, err, "stale data beats an error page")
	assert.Equal(t, 7, result.In)
	assert.Equal(t, 1, gateway.calls)
}

func TestStatusSurfacesErrorWithoutAnyCache(t *testing.T) {
	gateway := &fakeGateway{
		err: &attendance.RemoteError{StatusCode: 502, Message: "upstream down"},
	}
	service := NewBoardService(gateway, memory.NewRegistry(), time.Minute)

	_, err := service.Status(context.Background())

	assert.Error(t, err)
}
