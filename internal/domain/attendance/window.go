package attendance

import (
	"time"
)

// Reporting window kinds.
const (
	WindowWeek  = "week"
	WindowMonth = "month"
)

// WeekSize is the fixed day count of a weekly window and the step by
// which both window kinds page backward through history.
const WeekSize = 7

// Window describes a reporting span: offset 0 is the window ending
// today, offset n the window ending n steps further back.
type Window struct {
	Kind   string
	Offset int
}

// Bounds resolves the inclusive [start, end] calendar days of the
// window relative to now.
//
// A weekly window is the 7 calendar days ending at today-offset*7. A
// monthly window is the calendar month containing today-offset*7 days;
// month boundaries are recomputed from that anchor rather than paged
// in fixed chunks.
func (w Window) Bounds(now time.Time) (start, end time.Time) {
	anchor := DateOf(now).AddDate(0, 0, -w.Offset*WeekSize)

	switch w.Kind {
	case WindowMonth:
		start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	default:
		end = anchor
		start = end.AddDate(0, 0, -(WeekSize - 1))
	}
	return start, end
}

// Days enumerates every calendar day of the window, oldest to newest.
func (w Window) Days(now time.Time) []time.Time {
	start, end := w.Bounds(now)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
