package sse

import (
	"sync"
)

// Event names published by the engine.
const (
	EventRecordUpdated = "attendance.updated"
	EventSessionReset  = "session.reset"
)

// Event is one server-sent message for an employee's dashboard tabs.
type Event struct {
	EmployeeID string
	Event      string
	Data       interface{}
}

// Hub fans attendance updates out to every open dashboard connection
// of an employee.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a connection for an employee and returns the
// event channel plus its cleanup function.
func (h *Hub) Subscribe(employeeID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Event]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[employeeID], ch)
		close(ch)
		if len(h.subscribers[employeeID]) == 0 {
			delete(h.subscribers, employeeID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all of the employee's connections. Full
// channels are skipped rather than blocked on.
func (h *Hub) Publish(employeeID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[employeeID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// TotalSubscribers returns the number of open connections across all
// employees.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
