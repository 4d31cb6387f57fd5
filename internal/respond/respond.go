// Package respond writes the JSON envelope used by every endpoint:
// {"success": true, "data": ...} on success and
// {"success": false, "error": ..., "error_code": ..., "status_code": ...}
// on failure.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/learnquest/backend/internal/apperr"
)

type successEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	ErrorCode  string `json:"error_code,omitempty"`
	StatusCode int    `json:"status_code"`
}

func Data(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

// Message is Data plus a human-readable message field.
func Message(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, successEnvelope{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	writeJSON(w, e.Status, errorEnvelope{
		Success:    false,
		Error:      e.Message,
		ErrorCode:  e.Code,
		StatusCode: e.Status,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
