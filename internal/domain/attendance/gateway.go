package attendance

import (
	"context"
	"fmt"
	"time"
)

// Gateway is the remote time-tracking API this engine consumes. Every
// call suspends until the remote service answers; the engine never
// treats local state as authoritative over a Gateway response.
type Gateway interface {
	// ClockIn opens the day and returns the server-created record.
	ClockIn(ctx context.Context, note string) (Record, error)

	// StartBreak begins a break on the open day.
	StartBreak(ctx context.Context, note string) (Record, error)

	// EndBreak closes the running break.
	EndBreak(ctx context.Context, note string) (Record, error)

	// ClockOut closes the day.
	ClockOut(ctx context.Context, note string) (Record, error)

	// Today returns the current day's record (nil when the day has not
	// started) together with the server's per-action states.
	Today(ctx context.Context) (*Record, ActionStates, error)

	// Sheets fetches the caller's records for an inclusive date range.
	// Days without a record are simply absent from the result.
	Sheets(ctx context.Context, start, end time.Time) ([]Record, error)

	// Day fetches a single day's record; (nil, nil) when none exists.
	Day(ctx context.Context, date time.Time) (*Record, error)

	// EmployeesStatus fetches the admin snapshot of everyone's state.
	EmployeesStatus(ctx context.Context) (StatusBoard, error)
}

// RemoteError is a transport or server failure from the Gateway. The
// message prefers the server-provided detail so it can be shown to the
// user as-is.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("time API error [%d]: %s", e.StatusCode, e.Message)
}
