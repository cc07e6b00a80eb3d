package attendance

import (
	"context"
)

// TrackerService defines the attendance state machine exposed to the
// dashboard: permitted-action derivation plus the four day actions.
type TrackerService interface {
	// Today returns the current day's record, derived availability and
	// the server's action states.
	Today(ctx context.Context) (TodayResponse, error)

	// ClockIn opens the day. Fails with ErrAlreadyClockedIn before any
	// network call when today's cached record already has a clock-in.
	ClockIn(ctx context.Context, req ActionRequest) (RecordResponse, error)

	// StartBreak begins a break; requires a clocked-in, not-on-break day.
	StartBreak(ctx context.Context, req ActionRequest) (RecordResponse, error)

	// EndBreak closes the running break; fails with ErrNoActiveBreak otherwise.
	EndBreak(ctx context.Context, req ActionRequest) (RecordResponse, error)

	// ClockOut closes the day. When a break is running it issues
	// end-break first and aborts if that step fails.
	ClockOut(ctx context.Context, req ActionRequest) (RecordResponse, error)

	// ResetSession evicts the caller's cached records (logout hook).
	ResetSession(ctx context.Context) error
}

// HistoryService walks backward through attendance history, filling
// the cache page by page without gaps or duplicate rows.
type HistoryService interface {
	// LoadPage populates the cache for the requested window and returns
	// the cached records covering it, newest first.
	LoadPage(ctx context.Context, req PageRequest) (PageResponse, error)
}

// BoardService serves the admin all-employees status snapshot.
type BoardService interface {
	// Status returns the snapshot, fetching through the Gateway when the
	// cached copy is stale.
	Status(ctx context.Context) (StatusBoardResponse, error)
}
