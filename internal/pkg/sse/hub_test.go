package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribersOfEmployee(t *testing.T) {
	hub := NewHub()
	first, cleanupFirst := hub.Subscribe("emp-1")
	second, cleanupSecond := hub.Subscribe("emp-1")
	other, cleanupOther := hub.Subscribe("emp-2")
	defer cleanupFirst()
	defer cleanupSecond()
	defer cleanupOther()

	hub.Publish("emp-1", Event{EmployeeID: "emp-1", Event: EventRecordUpdated})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Empty(t, other, "events stay scoped to the employee")

	got := <-first
	assert.Equal(t, EventRecordUpdated, got.Event)
}

func TestPublishToEmployeeWithoutSubscribers(t *testing.T) {
	hub := NewHub()

	// Must not panic or block.
	hub.Publish("emp-missing", Event{Event: EventSessionReset})
}

func TestCleanupRemovesSubscription(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("emp-1")
	assert.Equal(t, 1, hub.TotalSubscribers())

	cleanup()

	assert.Equal(t, 0, hub.TotalSubscribers())
	hub.Publish("emp-1", Event{Event: EventRecordUpdated})
}

func TestPublishSkipsFullChannels(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	// Fill past the buffer; extra events are dropped, not blocked on.
	for i := 0; i < 20; i++ {
		hub.Publish("emp-1", Event{Event: EventRecordUpdated})
	}

	assert.Equal(t, cap(ch), len(ch))
}
