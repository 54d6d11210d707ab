package handlers

import (
	"encoding/json"
	"net/http"

	"stormwatch/internal/service"
)

// envelope mirrors the success/error wire shape station firmware and the
// chart widget already consume.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Data: message})
}

// rejectStatus maps a reject reason to its externally visible status code.
func rejectStatus(reason service.RejectReason) int {
	switch reason {
	case service.ReasonUnauthorized:
		return http.StatusForbidden
	case service.ReasonTooSoon:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}
