package gateway

import (
	"encoding/json"
	"net/http"
)

// successResponse is the 2xx body shape of the submission endpoint.
type successResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	RequestID            string `json:"requestId"`
	RemainingSubmissions int    `json:"remainingSubmissions"`
}

// errorResponse is the failure body shape. Context fields are populated
// per error kind and omitted otherwise.
type errorResponse struct {
	Success       bool     `json:"success"`
	Error         string   `json:"error"`
	RetryAfter    int64    `json:"retryAfter,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, body errorResponse) {
	body.Success = false
	writeJSON(w, status, body)
}
