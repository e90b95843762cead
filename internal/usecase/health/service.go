// Package health aggregates component availability for the health endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. DocumentCount covers every
// collection and is 0 when the store is unreachable.
type Report struct {
	Status        Status
	Checks        map[string]CheckResult
	DocumentCount int
}

// Service coordinates health checks.
type Service struct {
	store     StorePinger
	embedding EmbeddingChecker
	stats     StatsProvider
}

// New creates a Service. embedding and stats can be nil.
func New(store StorePinger, embedding EmbeddingChecker, stats StatsProvider) *Service {
	return &Service{store: store, embedding: embedding, stats: stats}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.store.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	var total int
	if s.stats != nil && checks["database"] == CheckOK {
		if counts, err := s.stats.Stats(ctx); err == nil {
			for _, n := range counts {
				total += n
			}
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, DocumentCount: total}
}
