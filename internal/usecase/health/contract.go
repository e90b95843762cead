package health

import "context"

// StorePinger checks document store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// StatsProvider reports per-collection document counts.
type StatsProvider interface {
	Stats(ctx context.Context) (map[string]int, error)
}
