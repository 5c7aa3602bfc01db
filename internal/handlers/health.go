package handlers

import (
	"fmt"
	"net/http"
	"time"
)

const version = "0.1.0"

// Check represents the status of a health check.
type Check struct {
	Status  string `json:"status"` // "pass" or "fail"
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Timestamp string           `json:"timestamp"`
}

// Health handles the health check endpoint. The room lives in process
// memory, so the only thing to report is that it is reachable and how
// many users it holds.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	online := len(h.room.Users())
	resp := HealthResponse{
		Status:  "healthy",
		Version: version,
		Checks: map[string]Check{
			"room": {Status: "pass", Message: fmt.Sprintf("%d online", online)},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	h.JSON(w, http.StatusOK, resp)
}
