package models

import "time"

// HealthStatus is the tri-state outcome of a liveness probe.
type HealthStatus string

const (
	// StatusUp means the repository answered with a success or redirect.
	StatusUp HealthStatus = "up"

	// StatusDown means the repository is definitively gone or unreachable.
	StatusDown HealthStatus = "down"

	// StatusUnknown means the probe could not decide; activation is left
	// untouched.
	StatusUnknown HealthStatus = "unknown"
)

// HealthCheck is one probe result. ResponseTimeMS and HTTPStatus are only set
// when an HTTP exchange completed.
type HealthCheck struct {
	ToolID         string       `json:"tool_id"`
	Status         HealthStatus `json:"status"`
	ResponseTimeMS *int64       `json:"response_time_ms,omitempty"`
	HTTPStatus     *int         `json:"http_status,omitempty"`
	ErrorMessage   string       `json:"error_message,omitempty"`
	CheckedAt      time.Time    `json:"checked_at"`
}

// HealthSummary reports the outcome of one probe sweep.
type HealthSummary struct {
	Checked int `json:"checked"`
	Up      int `json:"up"`
	Down    int `json:"down"`
	Unknown int `json:"unknown"`
}
