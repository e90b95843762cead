// Package answer implements the end-to-end question pipeline: relevance
// gate, query analysis, plan-driven retrieval, context assembly, and
// generation with graceful degradation.
package answer

import (
	"context"

	"go.uber.org/zap"

	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/plan"
	"github.com/carecompass/compass/internal/metrics"
	"github.com/carecompass/compass/internal/usecase/assemble"
	"github.com/carecompass/compass/internal/usecase/retrieval"
)

// emergencyContextDocs caps how many retrieved cases feed the emergency
// fast-path prompt.
const emergencyContextDocs = 5

// Service is the pipeline entry point consumed by the transport layer.
type Service struct {
	gate       Gate
	analyzer   Analyzer
	retriever  Retriever
	generator  Generator
	multiAgent bool
	logger     *zap.Logger
}

// New creates the pipeline. With multiAgent set, non-emergency queries
// use bucketed retrieval with per-source sections instead of one flat
// ranked list.
func New(gate Gate, analyzer Analyzer, retriever Retriever, generator Generator, multiAgent bool, logger *zap.Logger) *Service {
	return &Service{
		gate:       gate,
		analyzer:   analyzer,
		retriever:  retriever,
		generator:  generator,
		multiAgent: multiAgent,
		logger:     logger,
	}
}

// Process answers one caregiver query. It never returns an error for
// per-collection or generation failures: those degrade to fallback
// responses, because for a caregiver-facing assistant "no answer" is
// worse than a clearly degraded answer.
func (s *Service) Process(ctx context.Context, query string) Result {
	inDomain, score, matched := s.gate.Check(query)
	if !inDomain {
		metrics.GateRejectionsTotal.Inc()
		s.logger.Info("Query rejected as out of domain",
			zap.Float64("gate_score", score))
		return Result{
			ResponseText:    outOfDomainResponse,
			Citations:       []Citation{},
			ConfidenceLabel: ConfidenceOutOfScope,
			QueryType:       plan.OutOfScope,
			Categories:      []string{},
			RelevanceScore:  score,
		}
	}

	p := s.analyzer.Analyze(query)
	p.RelevanceScore = score
	p.MatchedTerms = matched

	metrics.QueriesTotal.WithLabelValues(string(p.QueryType)).Inc()
	s.logger.Info("Query analyzed",
		zap.String("query_type", string(p.QueryType)),
		zap.String("strategy", string(p.Strategy)),
		zap.Strings("categories", p.Categories),
		zap.Float64("gate_score", score))

	if p.EmergencyMode {
		return s.handleEmergency(ctx, query, p)
	}

	var (
		docs  []candidate.Candidate
		block string
	)
	if s.multiAgent {
		buckets, err := s.retriever.RetrieveBuckets(ctx, query, p)
		if err != nil {
			s.logger.Error("Bucketed retrieval failed", zap.Error(err))
			return s.fallback(p)
		}
		docs = flattenBuckets(buckets)
		block = assemble.FromBuckets(buckets, p)
	} else {
		var err error
		docs, err = s.retriever.Retrieve(ctx, query, p)
		if err != nil {
			s.logger.Error("Retrieval failed", zap.Error(err))
			return s.fallback(p)
		}
		block = assemble.Flat(docs, p)
	}

	text, err := s.generator.Generate(ctx, systemPrompt(p), userPrompt(query, block, p))
	if err != nil {
		s.logger.Error("Generation failed", zap.Error(err))
		return s.fallback(p)
	}

	citations := extractCitations(text, docs)
	confidence := calculateConfidence(docs, citations, p)
	metrics.AnswerConfidenceTotal.WithLabelValues(confidence).Inc()

	return Result{
		ResponseText:     text,
		Citations:        citations,
		ConfidenceLabel:  confidence,
		QueryType:        p.QueryType,
		Categories:       p.Categories,
		SourcesUsedCount: len(docs),
		RelevanceScore:   score,
	}
}

// handleEmergency is the fast path: a focused retrieval pass feeds a
// directive prompt, and any failure degrades to the static protocol
// response. The safety-critical contact information never depends on a
// failing component.
func (s *Service) handleEmergency(ctx context.Context, query string, p plan.QueryPlan) Result {
	docs, err := s.retriever.Retrieve(ctx, query, p)
	if err != nil {
		s.logger.Error("Emergency retrieval failed", zap.Error(err))
		docs = nil
	}

	contextDocs := docs
	if len(contextDocs) > emergencyContextDocs {
		contextDocs = contextDocs[:emergencyContextDocs]
	}
	block := assemble.Flat(contextDocs, p)

	text, err := s.generator.Generate(ctx, emergencySystemPrompt, emergencyPrompt(query, block))
	if err != nil {
		s.logger.Error("Emergency generation failed, serving protocol response", zap.Error(err))
		metrics.AnswerConfidenceTotal.WithLabelValues(ConfidenceProtocol).Inc()
		return Result{
			ResponseText:     emergencyProtocolResponse,
			Citations:        []Citation{},
			ConfidenceLabel:  ConfidenceProtocol,
			QueryType:        p.QueryType,
			Categories:       p.Categories,
			SourcesUsedCount: len(docs),
			IsEmergency:      true,
			RelevanceScore:   p.RelevanceScore,
		}
	}

	metrics.AnswerConfidenceTotal.WithLabelValues(ConfidenceHigh).Inc()
	return Result{
		ResponseText:     text,
		Citations:        extractCitations(text, docs),
		ConfidenceLabel:  ConfidenceHigh,
		QueryType:        p.QueryType,
		Categories:       p.Categories,
		SourcesUsedCount: len(docs),
		IsEmergency:      true,
		RelevanceScore:   p.RelevanceScore,
	}
}

// fallback is the technical-difficulty response. If the plan was flagged
// emergency it carries the contact block unconditionally.
func (s *Service) fallback(p plan.QueryPlan) Result {
	text := fallbackResponse
	if p.EmergencyMode {
		text = emergencyProtocolResponse
	}
	metrics.AnswerConfidenceTotal.WithLabelValues(ConfidenceError).Inc()
	return Result{
		ResponseText:    text,
		Citations:       []Citation{},
		ConfidenceLabel: ConfidenceError,
		QueryType:       p.QueryType,
		Categories:      p.Categories,
		IsEmergency:     p.EmergencyMode,
		RelevanceScore:  p.RelevanceScore,
	}
}

func flattenBuckets(b retrieval.Buckets) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(b.Community)+len(b.India)+len(b.Medical))
	out = append(out, b.Community...)
	out = append(out, b.India...)
	out = append(out, b.Medical...)
	return out
}
