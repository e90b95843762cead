package health

import (
	"context"
	"errors"
	"testing"
)

type mockStorePinger struct {
	err error
}

func (m *mockStorePinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

type mockStatsProvider struct {
	counts map[string]int
	err    error
}

func (m *mockStatsProvider) Stats(_ context.Context) (map[string]int, error) {
	return m.counts, m.err
}

func TestCheck_AllHealthy(t *testing.T) {
	stats := &mockStatsProvider{counts: map[string]int{"community_qa_pairs": 120, "medical_authoritative": 40}}
	svc := New(&mockStorePinger{}, &mockEmbeddingChecker{}, stats)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["embedding"] != CheckOK {
		t.Errorf("expected embedding %q, got %q", CheckOK, r.Checks["embedding"])
	}
	if r.DocumentCount != 160 {
		t.Errorf("expected 160 documents, got %d", r.DocumentCount)
	}
}

func TestCheck_StoreError(t *testing.T) {
	svc := New(&mockStorePinger{err: errors.New("conn refused")}, &mockEmbeddingChecker{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.DocumentCount != 0 {
		t.Errorf("expected zero documents for unreachable store, got %d", r.DocumentCount)
	}
}

func TestCheck_EmbeddingError(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockEmbeddingChecker{err: errors.New("timeout")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["embedding"] != CheckError {
		t.Errorf("expected embedding %q, got %q", CheckError, r.Checks["embedding"])
	}
}

func TestCheck_NilOptionalCheckers(t *testing.T) {
	svc := New(&mockStorePinger{}, nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["embedding"]; ok {
		t.Error("embedding check present without a checker")
	}
}

func TestCheck_StatsFailureIgnored(t *testing.T) {
	svc := New(&mockStorePinger{}, nil, &mockStatsProvider{err: errors.New("index missing")})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("stats failure must not degrade health, got %q", r.Status)
	}
	if r.DocumentCount != 0 {
		t.Errorf("expected zero count on stats failure, got %d", r.DocumentCount)
	}
}
