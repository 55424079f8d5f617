package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
)

// EventsSSE streams bus events to the browser as Server-Sent Events
func (h *APIHandlers) EventsSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientID := uuid.NewString()
	log := logger.With("sse").With("client_id", clientID)

	eventChan := h.events.Subscribe()
	defer h.events.Unsubscribe(eventChan)

	fmt.Fprintf(w, "data: {\"type\":\"connected\",\"clientId\":%q}\n\n", clientID)
	flusher.Flush()
	log.Debug("SSE client connected")

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-eventChan:
			if !ok {
				log.Debug("Event bus closed")
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				log.Warn("Failed to encode event", "type", event.Type, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		case <-r.Context().Done():
			log.Debug("SSE client disconnected")
			return
		case <-keepalive.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
