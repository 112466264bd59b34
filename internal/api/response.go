package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Spok95/geosites/internal/apperr"
)

// Response is the envelope every /api endpoint answers with.
type Response struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      any               `json:"data,omitempty"`
	ErrorCode string            `json:"errorCode,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// fail answers with the status and code derived from err. Unclassified errors
// are logged and reported without their text.
func fail(w http.ResponseWriter, log *slog.Logger, err error) {
	status := apperr.HTTPStatus(err)
	e, known := apperr.As(err)
	if !known || status == http.StatusInternalServerError {
		log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, Response{Message: "Internal server error", ErrorCode: "INTERNAL_ERROR"})
		return
	}
	writeJSON(w, status, Response{Message: e.Message, ErrorCode: e.Code, Details: e.Details})
}
