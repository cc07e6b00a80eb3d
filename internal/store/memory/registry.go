package memory

import (
	"sync"
	"time"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
)

// Registry hands out one Store per employee session and owns the
// shared admin status board. Stores live until an explicit reset or
// until pruned after sitting idle.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry

	boardMu sync.RWMutex
	board   *attendance.StatusBoard
}

type registryEntry struct {
	store    *Store
	lastUsed time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
	}
}

// For returns the employee's session store, creating it on first use.
func (r *Registry) For(employeeID string) attendance.Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[employeeID]
	if !ok {
		e = &registryEntry{store: NewStore(employeeID)}
		r.entries[employeeID] = e
	}
	e.lastUsed = time.Now()
	return e.store
}

// Reset evicts the employee's store (logout hook).
func (r *Registry) Reset(employeeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[employeeID]; ok {
		e.store.Reset()
		delete(r.entries, employeeID)
	}
}

// PruneIdle drops stores that have not been touched within maxIdle and
// returns how many were removed.
func (r *Registry) PruneIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	pruned := 0
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			e.store.Reset()
			delete(r.entries, id)
			pruned++
		}
	}
	return pruned
}

// SetBoard stores the latest all-employees status snapshot.
func (r *Registry) SetBoard(b attendance.StatusBoard) {
	r.boardMu.Lock()
	defer r.boardMu.Unlock()
	r.board = &b
}

// Board returns the cached snapshot, false when none was fetched yet.
func (r *Registry) Board() (attendance.StatusBoard, bool) {
	r.boardMu.RLock()
	defer r.boardMu.RUnlock()

	if r.board == nil {
		return attendance.StatusBoard{}, false
	}
	return *r.board, true
}
