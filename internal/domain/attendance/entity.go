package attendance

import (
	"time"
)

// Status values confirmed by the remote time-tracking API. The server
// is authoritative: locally inferred state never overrides these.
const (
	StatusIn      = "IN"
	StatusInBreak = "IN_BREAK"
	StatusOut     = "OUT"
)

// Record is one employee's clock-in/break/clock-out data for a single
// calendar day. At most one record exists per (employee, date); the ID
// is assigned by the remote API on the first clock-in of the day.
type Record struct {
	ID               string
	EmployeeID       string
	EmployeeName     string
	EmployeeImageURL *string
	Date             time.Time
	ClockIn          *time.Time
	ClockOut         *time.Time
	BreakStart       *time.Time
	BreakEnd         *time.Time
	Status           string
	Note             *string
	LastModified     time.Time
}

// DateOf truncates a timestamp to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Open reports whether the day has an unmatched clock-in.
func (r Record) Open() bool {
	return r.ClockIn != nil && r.ClockOut == nil
}

// OnBreak reports whether the record currently has an open break.
func (r Record) OnBreak() bool {
	return r.Status == StatusInBreak
}

// Valid checks the timestamp ordering invariants. Records coming from
// the remote API that violate them are flagged by callers rather than
// crashing the engine.
func (r Record) Valid() bool {
	if r.ClockOut != nil {
		if r.ClockIn == nil || r.ClockOut.Before(*r.ClockIn) {
			return false
		}
	}
	if r.BreakEnd != nil {
		if r.BreakStart == nil || r.BreakEnd.Before(*r.BreakStart) {
			return false
		}
	}
	return true
}

// KeyKind discriminates the two identity-key shapes used for merging.
type KeyKind int

const (
	// KeyByID identifies a record by its server-assigned ID.
	KeyByID KeyKind = iota
	// KeyByEmployeeDate identifies a record by (employee, calendar date);
	// used for range-fetch results that may arrive without an ID.
	KeyByEmployeeDate
)

// Key is the identity used to deduplicate records in the cache. It is
// resolved once per record at ingestion so that merge logic never
// re-derives the key shape ad hoc.
type Key struct {
	Kind       KeyKind
	ID         string
	EmployeeID string
	Date       string
}

// KeyOf resolves the identity key for a record: by ID when the server
// assigned one, else by the (employee, date) composite.
func KeyOf(r Record) Key {
	if r.ID != "" {
		return Key{Kind: KeyByID, ID: r.ID}
	}
	return Key{
		Kind:       KeyByEmployeeDate,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.Format("2006-01-02"),
	}
}

// Availability is the set of actions the current day's record permits.
// It is a pure function of the record and is recomputed on every read;
// it is never stored, so it can never go stale.
type Availability struct {
	CanClockIn    bool
	CanStartBreak bool
	CanEndBreak   bool
	CanClockOut   bool
}

// AvailabilityOf derives the permitted actions from today's record.
// A nil record means the employee has not started their day.
func AvailabilityOf(today *Record) Availability {
	if today == nil || today.ClockIn == nil {
		return Availability{CanClockIn: true}
	}
	if today.ClockOut != nil {
		// Day is closed; no further actions.
		return Availability{}
	}
	if today.OnBreak() {
		return Availability{CanEndBreak: true, CanClockOut: true}
	}
	return Availability{CanStartBreak: true, CanClockOut: true}
}

// ActionStates mirrors the remote API's per-action progress flags for
// the current day.
type ActionStates struct {
	ClockIn  string
	Break    string
	ClockOut string
}

// StatusBoard is the admin snapshot of every employee's current state.
type StatusBoard struct {
	In        int
	InBreak   int
	Out       int
	Total     int
	Absent    int
	Recent    []Record
	FetchedAt time.Time
}
