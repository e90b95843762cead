package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	answeruc "github.com/carecompass/compass/internal/usecase/answer"
	healthuc "github.com/carecompass/compass/internal/usecase/health"
)

type mockAnswerer struct {
	lastQuery string
	result    answeruc.Result
}

func (m *mockAnswerer) Process(_ context.Context, query string) answeruc.Result {
	m.lastQuery = query
	return m.result
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report {
	return m.report
}

type mockStats struct {
	stats map[string]int
	err   error
}

func (m *mockStats) Stats(context.Context) (map[string]int, error) {
	return m.stats, m.err
}

func newTestRouter(answers Answerer, health HealthService, stats StatsProvider) http.Handler {
	s := NewServer(answers, health, stats, zap.NewNop())
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

func TestAsk(t *testing.T) {
	answers := &mockAnswerer{
		result: answeruc.Result{
			ResponseText:    "Use a suction machine as directed.",
			ConfidenceLabel: answeruc.ConfidenceMedium,
			QueryType:       "simple",
			Categories:      []string{"equipment"},
		},
	}
	router := newTestRouter(answers, &mockHealth{}, &mockStats{})

	body := strings.NewReader(`{"question": "how do I use a suction machine?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ask", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if answers.lastQuery != "how do I use a suction machine?" {
		t.Errorf("query = %q", answers.lastQuery)
	}

	var got answeruc.Result
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ResponseText != "Use a suction machine as directed." {
		t.Errorf("ResponseText = %q", got.ResponseText)
	}
	if got.ConfidenceLabel != answeruc.ConfidenceMedium {
		t.Errorf("ConfidenceLabel = %q", got.ConfidenceLabel)
	}
}

func TestAsk_TrimsWhitespace(t *testing.T) {
	answers := &mockAnswerer{}
	router := newTestRouter(answers, &mockHealth{}, &mockStats{})

	body := strings.NewReader(`{"question": "  what is BiPAP?  "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ask", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if answers.lastQuery != "what is BiPAP?" {
		t.Errorf("query = %q, want trimmed", answers.lastQuery)
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	router := newTestRouter(&mockAnswerer{}, &mockHealth{}, &mockStats{})

	for _, body := range []string{`{"question": ""}`, `{"question": "   "}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestAsk_InvalidJSON(t *testing.T) {
	router := newTestRouter(&mockAnswerer{}, &mockHealth{}, &mockStats{})

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question": `))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != "bad_request" {
		t.Errorf("code = %q, want bad_request", errResp.Code)
	}
}

func TestAsk_TooLong(t *testing.T) {
	router := newTestRouter(&mockAnswerer{}, &mockHealth{}, &mockStats{})

	question := strings.Repeat("a", maxQuestionLen+1)
	body := strings.NewReader(`{"question": "` + question + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ask", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthCheck_Healthy(t *testing.T) {
	health := &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{
			"database":  healthuc.CheckOK,
			"embedding": healthuc.CheckOK,
		},
		DocumentCount: 1247,
	}}
	router := newTestRouter(&mockAnswerer{}, health, &mockStats{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != string(healthuc.Healthy) {
		t.Errorf("Status = %q, want %q", got.Status, healthuc.Healthy)
	}
	if got.DocumentCount != 1247 {
		t.Errorf("DocumentCount = %d, want 1247", got.DocumentCount)
	}
	if got.Checks["database"] != "ok" {
		t.Errorf("Checks = %v", got.Checks)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	health := &mockHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}}
	router := newTestRouter(&mockAnswerer{}, health, &mockStats{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestCollectionStats(t *testing.T) {
	stats := &mockStats{stats: map[string]int{
		"community_qa_pairs":    500,
		"medical_authoritative": 300,
	}}
	router := newTestRouter(&mockAnswerer{}, &mockHealth{}, stats)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.TotalDocuments != 800 {
		t.Errorf("TotalDocuments = %d, want 800", got.TotalDocuments)
	}
	if got.Collections["community_qa_pairs"] != 500 {
		t.Errorf("Collections = %v", got.Collections)
	}
}

func TestCollectionStats_Error(t *testing.T) {
	stats := &mockStats{err: errors.New("redis down")}
	router := newTestRouter(&mockAnswerer{}, &mockHealth{}, stats)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
