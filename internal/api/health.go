package api

import (
	"net/http"
	"time"
)

func (h *handler) hello(w http.ResponseWriter, _ *http.Request) {
	ok(w, http.StatusOK, "Geosites API", map[string]any{
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.Env,
	})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	ok(w, http.StatusOK, "Service is healthy", map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
