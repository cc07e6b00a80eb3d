package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/store/memory"
)

// BoardServiceImpl serves the admin all-employees snapshot, refreshing
// through the gateway when the cached copy goes stale. A refresh
// failure falls back to the stale board: stale-but-available data is
// preferred over blanking the panel.
type BoardServiceImpl struct {
	gateway  attendance.Gateway
	registry *memory.Registry
	maxAge   time.Duration
}

func NewBoardService(gateway attendance.Gateway, registry *memory.Registry, maxAge time.Duration) attendance.BoardService {
	return &BoardServiceImpl{
		gateway:  gateway,
		registry: registry,
		maxAge:   maxAge,
	}
}

// Status implements attendance.BoardService.
func (s *BoardServiceImpl) Status(ctx context.Context) (attendance.StatusBoardResponse, error) {
	cached, ok := s.registry.Board()
	if ok && time.Since(cached.FetchedAt) < s.maxAge {
		return attendance.NewStatusBoardResponse(cached), nil
	}

	board, err := s.gateway.EmployeesStatus(ctx)
	if err != nil {
		if ok {
			slog.Warn("Status board refresh failed, serving stale snapshot",
				"fetched_at", cached.FetchedAt, "error", err)
			return attendance.NewStatusBoardResponse(cached), nil
		}
		return attendance.StatusBoardResponse{}, err
	}

	s.registry.SetBoard(board)
	return attendance.NewStatusBoardResponse(board), nil
}
