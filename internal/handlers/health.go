package handlers

import (
	"context"
	"net/http"
	"time"
)

// connectivity is implemented by buses that can lose their connection
type connectivity interface {
	Connected() bool
}

// Healthz reports that the process is up
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports whether the blob store and bus are reachable
func (h *APIHandlers) Readyz(bus any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"store": "ok", "bus": "ok"}
		ready := true

		if err := h.draft.Ping(ctx); err != nil {
			checks["store"] = err.Error()
			ready = false
		}
		if c, ok := bus.(connectivity); ok && !c.Connected() {
			checks["bus"] = "disconnected"
			ready = false
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, checks)
	}
}
