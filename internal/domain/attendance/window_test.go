package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowBoundsWeek(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	start, end := Window{Kind: WindowWeek}.Bounds(now)

	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), end)
}

func TestWindowBoundsWeekOffsetsAreAdjacent(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	currentStart, _ := Window{Kind: WindowWeek, Offset: 0}.Bounds(now)
	_, previousEnd := Window{Kind: WindowWeek, Offset: 1}.Bounds(now)

	// The previous window ends the day before the current one starts.
	assert.Equal(t, currentStart.AddDate(0, 0, -1), previousEnd)
}

func TestWindowBoundsMonth(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	start, end := Window{Kind: WindowMonth}.Bounds(now)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestWindowBoundsMonthCrossesBoundary(t *testing.T) {
	// Anchoring 7 days back from March 2 lands in February, so the
	// offset-1 monthly window is the whole of February.
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	start, end := Window{Kind: WindowMonth, Offset: 1}.Bounds(now)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), end)
}

func TestWindowDays(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	weekDays := Window{Kind: WindowWeek}.Days(now)
	assert.Len(t, weekDays, WeekSize)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), weekDays[0])
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), weekDays[len(weekDays)-1])

	monthDays := Window{Kind: WindowMonth}.Days(now)
	assert.Len(t, monthDays, 31)
}
