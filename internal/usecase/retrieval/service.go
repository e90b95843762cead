// Package retrieval implements the multi-collection retrieval orchestrator:
// plan-driven collection routing, hybrid relevance scoring, deduplication,
// and source diversification.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/catalog"
	"github.com/carecompass/compass/internal/domain/plan"
	"github.com/carecompass/compass/internal/metrics"
)

// Per-strategy result counts and the hard per-collection cap.
const (
	focusedResults    = 15
	broadResults      = 12
	stageResults      = 8
	costStageResults  = 5
	maxPerCollection  = 20
	primaryStageCount = 2
)

// costStageSuffix widens the cost stage of a multi-stage search toward
// pricing content.
const costStageSuffix = " cost price india"

// Service orchestrates retrieval across collections.
type Service struct {
	searcher Searcher
	embedder Embedder
	scorer   *Scorer
	pool     *ants.Pool
	logger   *zap.Logger
}

// New creates a retrieval Service. The pool is optional: without it,
// per-collection queries run sequentially.
func New(searcher Searcher, embedder Embedder, scorer *Scorer, pool *ants.Pool, logger *zap.Logger) *Service {
	return &Service{
		searcher: searcher,
		embedder: embedder,
		scorer:   scorer,
		pool:     pool,
		logger:   logger,
	}
}

// Retrieve executes the plan's search strategy and returns one flat,
// diversified, score-ranked candidate list.
func (s *Service) Retrieve(ctx context.Context, query string, p plan.QueryPlan) ([]candidate.Candidate, error) {
	start := time.Now()

	var (
		docs []candidate.Candidate
		err  error
	)
	switch p.Strategy {
	case plan.Focused:
		docs, err = s.searchStage(ctx, query, p.PrimaryCategory(), p, focusedResults)
	case plan.MultiStage:
		docs, err = s.multiStage(ctx, query, p)
	default:
		docs, err = s.searchStage(ctx, query, p.PrimaryCategory(), p, broadResults)
	}
	if err != nil {
		return nil, err
	}

	strategy := string(p.Strategy)
	metrics.RetrievalDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	metrics.RetrievedDocumentsTotal.WithLabelValues(strategy).Add(float64(len(docs)))

	s.logger.Info("Retrieval complete",
		zap.String("strategy", strategy),
		zap.Int("documents", len(docs)),
		zap.Duration("duration", time.Since(start)))

	return docs, nil
}

// multiStage runs one search per primary category, then an extra
// cost-focused stage when the plan asks for pricing, and deduplicates
// the concatenated results by content prefix.
func (s *Service) multiStage(ctx context.Context, query string, p plan.QueryPlan) ([]candidate.Candidate, error) {
	var docs []candidate.Candidate

	categories := p.Categories
	if len(categories) > primaryStageCount {
		categories = categories[:primaryStageCount]
	}
	for _, category := range categories {
		stage, err := s.searchStage(ctx, query, category, p, stageResults)
		if err != nil {
			return nil, err
		}
		docs = append(docs, stage...)
	}

	if p.NeedsCostInfo {
		costPlan := p
		costPlan.IndiaPriority = true
		stage, err := s.searchStage(ctx, query+costStageSuffix, "india", costPlan, costStageResults)
		if err != nil {
			return nil, err
		}
		docs = append(docs, stage...)
	}

	return dedupeByContent(docs), nil
}

// searchStage embeds the stage query, fans out across the routed
// collections, scores and sorts the pool, and diversifies it down to k.
func (s *Service) searchStage(ctx context.Context, query, category string, p plan.QueryPlan, k int) ([]candidate.Candidate, error) {
	result, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	pooled := s.fanOut(ctx, result.Embedding, collectionOrder(p, category), min(k, maxPerCollection), p)
	sortByScore(pooled)
	return Diversify(pooled, k), nil
}

// fanOut queries each collection for up to k neighbors. A failing
// collection contributes zero candidates and is logged, never fatal.
func (s *Service) fanOut(ctx context.Context, vector []float32, collections []string, k int, p plan.QueryPlan) []candidate.Candidate {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		pooled []candidate.Candidate
	)

	for _, name := range collections {
		name := name
		task := func() {
			defer wg.Done()

			cands, err := s.searcher.QueryCollection(ctx, name, vector, k)
			if err != nil {
				s.logger.Warn("Collection query failed",
					zap.String("collection", name), zap.Error(err))
				return
			}
			for i, c := range cands {
				cands[i] = s.scorer.Score(c, p)
			}

			mu.Lock()
			pooled = append(pooled, cands...)
			mu.Unlock()
		}

		wg.Add(1)
		if s.pool == nil || s.pool.Submit(task) != nil {
			task()
		}
	}
	wg.Wait()

	return pooled
}

// collectionOrder routes the search to collections by plan context.
// Precedence: emergency, then locale, then medical topics, then default
// (community experiences first, medical authority after).
func collectionOrder(p plan.QueryPlan, category string) []string {
	switch {
	case p.EmergencyMode:
		return []string{catalog.EmergencyExperiences, catalog.CommunityQAPairs, catalog.MedicalAuthoritative}
	case category == "india":
		return []string{catalog.CommunityQAPairs, catalog.CommunityDiscussions, catalog.MedicalCommunity}
	case category == "medical" || category == "medication":
		return []string{catalog.MedicalAuthoritative, catalog.MedicalClinical, catalog.CommunityQAPairs}
	default:
		return []string{catalog.CommunityQAPairs, catalog.CommunityDiscussions, catalog.MedicalAuthoritative, catalog.MedicalClinical}
	}
}

// sortByScore orders candidates by descending relevance. Ties fall back
// to ascending distance, then document id, so output is deterministic
// regardless of fan-out completion order.
func sortByScore(cands []candidate.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score() != cands[j].Score() {
			return cands[i].Score() > cands[j].Score()
		}
		if cands[i].Distance() != cands[j].Distance() {
			return cands[i].Distance() < cands[j].Distance()
		}
		return cands[i].Document().ID() < cands[j].Document().ID()
	})
}
