package ports

import "context"

// HealthChecker checks storage backend health.
type HealthChecker interface {
	// Ping verifies the backend is reachable. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "postgresql", "leveldb", "redis").
	Name() string
}
