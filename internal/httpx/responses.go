package httpx

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope shared by every endpoint: data on reads,
// message on writes and failures, both on update-style responses.
type Response struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func JSONData(w http.ResponseWriter, statusCode int, data interface{}) {
	writeJSON(w, statusCode, Response{Data: data})
}

func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, Response{Message: message})
}

func JSONMessageData(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	writeJSON(w, statusCode, Response{Message: message, Data: data})
}

// JSONError writes a failure with a human-readable message and optional
// field-level details.
func JSONError(w http.ResponseWriter, statusCode int, message string, details interface{}) {
	writeJSON(w, statusCode, Response{Message: message, Details: details})
}
