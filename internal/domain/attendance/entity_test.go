package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tsPtr(t time.Time) *time.Time { return &t }

func TestDateOf(t *testing.T) {
	// Arrange
	stamp := time.Date(2026, 3, 14, 23, 45, 12, 0, time.FixedZone("WIB", 7*3600))

	// Act
	day := DateOf(stamp)

	// Assert: truncated to the UTC calendar day, not the local one
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), day)
}

func TestRecordValid(t *testing.T) {
	nine := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	five := time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		record Record
		want   bool
	}{
		{"empty record", Record{}, true},
		{"open day", Record{ClockIn: tsPtr(nine)}, true},
		{"completed day", Record{ClockIn: tsPtr(nine), ClockOut: tsPtr(five)}, true},
		{"clock-out before clock-in", Record{ClockIn: tsPtr(five), ClockOut: tsPtr(nine)}, false},
		{"clock-out without clock-in", Record{ClockOut: tsPtr(five)}, false},
		{"break end before break start", Record{ClockIn: tsPtr(nine), BreakStart: tsPtr(noon), BreakEnd: tsPtr(nine)}, false},
		{"break end without break start", Record{ClockIn: tsPtr(nine), BreakEnd: tsPtr(noon)}, false},
		{"completed break", Record{ClockIn: tsPtr(nine), BreakStart: tsPtr(noon), BreakEnd: tsPtr(five)}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.record.Valid())
		})
	}
}

func TestKeyOf(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	withID := KeyOf(Record{ID: "rec-1", EmployeeID: "emp-1", Date: date})
	assert.Equal(t, KeyByID, withID.Kind)
	assert.Equal(t, "rec-1", withID.ID)

	withoutID := KeyOf(Record{EmployeeID: "emp-1", Date: date})
	assert.Equal(t, KeyByEmployeeDate, withoutID.Kind)
	assert.Equal(t, "emp-1", withoutID.EmployeeID)
	assert.Equal(t, "2026-03-14", withoutID.Date)
}

func TestAvailabilityOf(t *testing.T) {
	nine := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	five := time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		today *Record
		want  Availability
	}{
		{
			name:  "no record yet",
			today: nil,
			want:  Availability{CanClockIn: true},
		},
		{
			name:  "record without clock-in",
			today: &Record{},
			want:  Availability{CanClockIn: true},
		},
		{
			name:  "clocked in",
			today: &Record{ClockIn: tsPtr(nine), Status: StatusIn},
			want:  Availability{CanStartBreak: true, CanClockOut: true},
		},
		{
			name:  "on break",
			today: &Record{ClockIn: tsPtr(nine), BreakStart: tsPtr(noon), Status: StatusInBreak},
			want:  Availability{CanEndBreak: true, CanClockOut: true},
		},
		{
			name:  "day closed",
			today: &Record{ClockIn: tsPtr(nine), ClockOut: tsPtr(five), Status: StatusOut},
			want:  Availability{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, AvailabilityOf(c.today))
		})
	}
}
