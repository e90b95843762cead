package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	answeruc "github.com/carecompass/compass/internal/usecase/answer"
	healthuc "github.com/carecompass/compass/internal/usecase/health"
)

// maxQuestionLen bounds the accepted question size. Longer inputs are
// almost certainly pasted documents, not questions.
const maxQuestionLen = 2000

// Answerer runs a question through the answering pipeline.
type Answerer interface {
	Process(ctx context.Context, query string) answeruc.Result
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// StatsProvider returns per-collection document counts.
type StatsProvider interface {
	Stats(ctx context.Context) (map[string]int, error)
}

// Server exposes the question answering pipeline over HTTP.
type Server struct {
	answers Answerer
	health  HealthService
	stats   StatsProvider
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(answers Answerer, health HealthService, stats StatsProvider, logger *zap.Logger) *Server {
	return &Server{
		answers: answers,
		health:  health,
		stats:   stats,
		logger:  logger,
	}
}

// Routes mounts the API handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/ask", s.Ask)
	r.Get("/api/health", s.HealthCheck)
	r.Get("/api/collections/stats", s.CollectionStats)
	r.Get("/metrics", s.Metrics)
}

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Ask handles POST /api/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "question is required")
		return
	}
	if len(question) > maxQuestionLen {
		writeError(w, http.StatusBadRequest, "validation_failed", "question is too long")
		return
	}

	result := s.answers.Process(r.Context(), question)
	writeJSON(w, http.StatusOK, result)
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status        string            `json:"status"`
	Checks        map[string]string `json:"checks"`
	DocumentCount int               `json:"document_count"`
}

// HealthCheck handles GET /api/health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:        string(report.Status),
		Checks:        checks,
		DocumentCount: report.DocumentCount,
	})
}

// StatsResponse is the body of GET /api/collections/stats.
type StatsResponse struct {
	Collections    map[string]int `json:"collections"`
	TotalDocuments int            `json:"total_documents"`
}

// CollectionStats handles GET /api/collections/stats.
func (s *Server) CollectionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Stats(r.Context())
	if err != nil {
		s.logger.Error("failed to read collection stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	var total int
	for _, n := range stats {
		total += n
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Collections:    stats,
		TotalDocuments: total,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
