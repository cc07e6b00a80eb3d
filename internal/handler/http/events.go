package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shiftsense/attendance-engine-go/internal/handler/http/response"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/sse"
	"github.com/shiftsense/attendance-engine-go/internal/service/tracker"
)

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub *sse.Hub
}

func NewEventsHandler(hub *sse.Hub) EventsHandler {
	return &eventsHandlerImpl{
		hub: hub,
	}
}

// Stream implements EventsHandler. Pushes record updates for the
// authenticated employee over SSE so every open dashboard tab stays in
// sync without polling.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	employeeID, err := tracker.ClaimsEmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()
	slog.Info("Dashboard stream opened",
		"employee_id", employeeID,
		"active_streams", h.hub.TotalSubscribers())

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":\"%s\"}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
