package attendance

import (
	"context"
	"time"
)

// Store is the session-scoped record cache for one employee. All
// mutations go through Merge, which is idempotent and key-based, so
// overlapping fetches and repeated page loads are safe in any order.
type Store interface {
	// Merge folds a batch of records into the cache. Identity is the
	// tagged Key resolved at ingestion; on conflict the incoming record
	// wins. Returns the records that changed the cache content.
	Merge(records ...Record) []Record

	// Records returns the cached history, sorted descending by date.
	Records() []Record

	// RecordOn looks up the record for a calendar day.
	RecordOn(date time.Time) (Record, bool)

	// Today returns the record for the current UTC day, nil when the
	// employee has not started it.
	Today() *Record

	// Hydrated reports whether a persisted snapshot was already folded
	// into this store for the session.
	Hydrated() bool
	MarkHydrated()

	// Reset evicts everything; the only way records leave the cache.
	Reset()
}

// Snapshotter persists a store's content across sessions. Optional:
// the engine runs fully in-memory when none is configured.
type Snapshotter interface {
	Save(ctx context.Context, employeeID string, records []Record) error
	Load(ctx context.Context, employeeID string) ([]Record, error)
	Clear(ctx context.Context, employeeID string) error
}
