package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
)

// OpenEntrySource lists today's in-progress entries with a fresh breakdown.
type OpenEntrySource interface {
	OpenEntries(ctx context.Context) ([]timeentry.TimeEntryResponse, error)
}

type LiveHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type liveHandlerImpl struct {
	hub       *sse.Hub
	source    OpenEntrySource
	keepalive time.Duration
}

func NewLiveHandler(hub *sse.Hub, source OpenEntrySource, keepalive time.Duration) LiveHandler {
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	return &liveHandlerImpl{hub: hub, source: source, keepalive: keepalive}
}

// Stream handles GET /time-entries/live. With ?employee_id= only that
// employee's breakdowns are sent.
func (h *liveHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	topic := sse.AllTopics
	if id := r.URL.Query().Get("employee_id"); id != "" {
		topic = id
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	writeEvent(w, "connected", map[string]string{"status": "connected", "topic": topic})

	// current state, so clients don't wait for the first tick
	open, err := h.source.OpenEntries(r.Context())
	if err != nil {
		slog.Error("Failed to load open entries", "error", err)
	}
	for _, e := range open {
		if topic == sse.AllTopics || e.EmployeeID == topic {
			writeEvent(w, "breakdown", e)
		}
	}
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			writeEvent(w, event.Event, event.Data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to encode SSE event", "event", name, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
}
