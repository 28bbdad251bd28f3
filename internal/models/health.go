package models

import "time"

// Database sub-status values reported by the health endpoint
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// HealthResponse represents the response from the health check endpoint
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Database  string    `json:"database" example:"connected"`
	Service   string    `json:"service" example:"branch-loan-api"`
	Timestamp time.Time `json:"timestamp" example:"2025-11-14T18:00:00Z"`
}
