package memory

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
)

const dateKeyLayout = "2006-01-02"

// Store is the in-memory attendance record cache for one employee.
// Content is indexed by calendar day with a secondary ID index, so a
// record fetched first without an ID and later with one still merges
// into a single row.
type Store struct {
	mu         sync.RWMutex
	employeeID string
	byDate     map[string]attendance.Record
	byID       map[string]string
	ordered    []attendance.Record
	hydrated   bool
}

func NewStore(employeeID string) *Store {
	return &Store{
		employeeID: employeeID,
		byDate:     make(map[string]attendance.Record),
		byID:       make(map[string]string),
	}
}

// Merge implements attendance.Store. Incoming records win on conflict;
// merging the same batch twice leaves the cache unchanged the second
// time.
func (s *Store) Merge(records ...attendance.Record) []attendance.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []attendance.Record

	for _, rec := range records {
		if !rec.Valid() {
			slog.Warn("Skipping attendance record with invalid clock ordering",
				"record_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"date", rec.Date.Format(dateKeyLayout))
			continue
		}

		dateKey := rec.Date.Format(dateKeyLayout)
		key := attendance.KeyOf(rec)

		// Resolve the row this record replaces: by ID first, else by day.
		if key.Kind == attendance.KeyByID {
			if prevDate, ok := s.byID[key.ID]; ok && prevDate != dateKey {
				// The record moved to another day (administrative fix);
				// drop the stale row.
				delete(s.byDate, prevDate)
			}
		}

		prev, had := s.byDate[dateKey]
		if had && prev.ID != "" && prev.ID != rec.ID {
			delete(s.byID, prev.ID)
		}

		s.byDate[dateKey] = rec
		if rec.ID != "" {
			s.byID[rec.ID] = dateKey
		}

		if !had || !reflect.DeepEqual(prev, rec) {
			changed = append(changed, rec)
		}
	}

	if len(changed) > 0 {
		s.rebuildOrder()
	}
	return changed
}

// rebuildOrder re-sorts the cached history descending by date. Caller
// holds the lock.
func (s *Store) rebuildOrder() {
	ordered := make([]attendance.Record, 0, len(s.byDate))
	for _, rec := range s.byDate {
		ordered = append(ordered, rec)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date)
	})
	s.ordered = ordered
}

// Records implements attendance.Store.
func (s *Store) Records() []attendance.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]attendance.Record, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// RecordOn implements attendance.Store.
func (s *Store) RecordOn(date time.Time) (attendance.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byDate[attendance.DateOf(date).Format(dateKeyLayout)]
	return rec, ok
}

// Today implements attendance.Store.
func (s *Store) Today() *attendance.Record {
	rec, ok := s.RecordOn(time.Now())
	if !ok {
		return nil
	}
	return &rec
}

// Hydrated implements attendance.Store.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// MarkHydrated implements attendance.Store.
func (s *Store) MarkHydrated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrated = true
}

// Reset implements attendance.Store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byDate = make(map[string]attendance.Record)
	s.byID = make(map[string]string)
	s.ordered = nil
	s.hydrated = false
}
