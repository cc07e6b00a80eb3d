package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/store/memory"
)

// RefreshJobs keeps the shared dashboard state warm: the admin status
// board is re-fetched on an interval (using the configured service
// token) and idle session stores are pruned.
type RefreshJobs struct {
	gateway  attendance.Gateway
	registry *memory.Registry
	maxIdle  time.Duration
}

func NewRefreshJobs(gateway attendance.Gateway, registry *memory.Registry, maxIdle time.Duration) *RefreshJobs {
	return &RefreshJobs{
		gateway:  gateway,
		registry: registry,
		maxIdle:  maxIdle,
	}
}

func (j *RefreshJobs) Register(scheduler *Scheduler, boardInterval time.Duration) {
	scheduler.Add(Job{
		Name:      "refresh_status_board",
		Interval:  boardInterval,
		Immediate: true,
		Run:       j.RefreshStatusBoard,
	})
	scheduler.Add(Job{
		Name:     "prune_idle_sessions",
		Interval: j.maxIdle,
		Run:      j.PruneIdleSessions,
	})
}

// RefreshStatusBoard re-fetches the all-employees snapshot. A failure
// leaves the previous board in place; stale data beats a blank panel.
func (j *RefreshJobs) RefreshStatusBoard(ctx context.Context) error {
	board, err := j.gateway.EmployeesStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh status board: %w", err)
	}
	j.registry.SetBoard(board)
	return nil
}

// PruneIdleSessions evicts caches nobody has touched for a while.
func (j *RefreshJobs) PruneIdleSessions(ctx context.Context) error {
	if pruned := j.registry.PruneIdle(j.maxIdle); pruned > 0 {
		slog.Info("Pruned idle attendance sessions", "count", pruned)
	}
	return nil
}
