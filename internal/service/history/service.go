package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/service/tracker"
	"github.com/shiftsense/attendance-engine-go/internal/store/memory"
)

// HistoryServiceImpl populates the session cache one window at a time,
// walking backward from today. A failed or empty range fetch degrades
// to per-day probes so a single broken day never sinks the whole page.
type HistoryServiceImpl struct {
	gateway   attendance.Gateway
	registry  *memory.Registry
	snapshots attendance.Snapshotter
}

func NewHistoryService(
	gateway attendance.Gateway,
	registry *memory.Registry,
	snapshots attendance.Snapshotter,
) attendance.HistoryService {
	return &HistoryServiceImpl{
		gateway:   gateway,
		registry:  registry,
		snapshots: snapshots,
	}
}

// LoadPage implements attendance.HistoryService.
func (s *HistoryServiceImpl) LoadPage(ctx context.Context, req attendance.PageRequest) (attendance.PageResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PageResponse{}, err
	}

	employeeID, store, err := s.session(ctx)
	if err != nil {
		return attendance.PageResponse{}, err
	}

	s.hydrate(ctx, employeeID, store)

	window := attendance.Window{Kind: req.Kind, Offset: req.Offset}
	start, end := window.Bounds(time.Now())
	pageID := uuid.NewString()

	fetched, err := s.gateway.Sheets(ctx, start, end)
	if err != nil || len(fetched) == 0 {
		// Zero records is ambiguous: the range endpoint may legitimately
		// have no data, or it may not support this case. Probe day by
		// day either way, tolerating individual failures.
		if err != nil {
			slog.Warn("Range fetch failed, probing per day",
				"page_id", pageID, "start", start.Format("2006-01-02"),
				"end", end.Format("2006-01-02"), "error", err)
		}
		fetched = s.fetchDays(ctx, pageID, window)
	}

	if changed := store.Merge(fetched...); len(changed) > 0 && s.snapshots != nil {
		if err := s.snapshots.Save(ctx, employeeID, changed); err != nil {
			slog.Error("Failed to persist attendance snapshot",
				"employee_id", employeeID, "error", err)
		}
	}

	return attendance.PageResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Records:   attendance.NewRecordResponses(s.cachedRange(store, start, end)),
	}, nil
}

func (s *HistoryServiceImpl) session(ctx context.Context) (string, attendance.Store, error) {
	employeeID, err := tracker.ClaimsEmployeeID(ctx)
	if err != nil {
		return "", nil, err
	}
	return employeeID, s.registry.For(employeeID), nil
}

// hydrate folds the persisted snapshot into a fresh session store.
// Best effort: a failed load is retried on the next page.
func (s *HistoryServiceImpl) hydrate(ctx context.Context, employeeID string, store attendance.Store) {
	if s.snapshots == nil || store.Hydrated() {
		return
	}

	records, err := s.snapshots.Load(ctx, employeeID)
	if err != nil {
		slog.Warn("Failed to hydrate attendance cache from snapshot",
			"employee_id", employeeID, "error", err)
		return
	}
	store.Merge(records...)
	store.MarkHydrated()
}

// fetchDays probes every day of the window sequentially. A day-level
// failure is logged and skipped: that day stays missing from the cache
// and aggregates as zero hours.
func (s *HistoryServiceImpl) fetchDays(ctx context.Context, pageID string, window attendance.Window) []attendance.Record {
	var records []attendance.Record
	for _, day := range window.Days(time.Now()) {
		record, err := s.gateway.Day(ctx, day)
		if err != nil {
			slog.Warn("Day fetch failed, skipping",
				"page_id", pageID, "date", day.Format("2006-01-02"), "error", err)
			continue
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records
}

// cachedRange returns the cached records inside [start, end], newest
// first. The store keeps history sorted, so no re-sort is needed here.
func (s *HistoryServiceImpl) cachedRange(store attendance.Store, start, end time.Time) []attendance.Record {
	var out []attendance.Record
	for _, rec := range store.Records() {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
