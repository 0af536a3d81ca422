package system

import (
	"context"
	"time"
)

// Health statuses
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusConnected = "connected"
)

// HealthReport is the result of probing the gateway dependencies
type HealthReport struct {
	Status    string
	Database  string
	Storage   string
	Timestamp time.Time
}

// Healthy reports whether every dependency answered
func (r *HealthReport) Healthy() bool {
	return r.Database == StatusConnected && r.Storage == StatusConnected
}

// HealthService probes the gateway dependencies
type HealthService interface {
	Check(ctx context.Context) *HealthReport
}

// Pinger is implemented by dependencies that can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}
