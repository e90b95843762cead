package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/catalog"
	"github.com/carecompass/compass/internal/domain/plan"
)

// Per-bucket caps for multi-agent retrieval.
const (
	communityBucketCap = 5
	indiaBucketCap     = 4
	medicalBucketCap   = 3
)

// Buckets holds the three labeled result sets of multi-agent retrieval.
// Buckets are independently capped and sorted, never merged, so the
// consumer keeps explicit per-source attribution. An empty bucket stays
// present so formatting can say "no content found" instead of silently
// dropping the section.
type Buckets struct {
	Community []candidate.Candidate
	India     []candidate.Candidate
	Medical   []candidate.Candidate
}

// RetrieveBuckets runs three independent retrieval passes, one per
// perspective: community experience, locale-specific guidance, and
// medical authority.
func (s *Service) RetrieveBuckets(ctx context.Context, query string, p plan.QueryPlan) (Buckets, error) {
	result, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return Buckets{}, fmt.Errorf("embed query: %w", err)
	}
	vector := result.Embedding

	community := s.bucketPass(ctx, vector, p,
		[]string{catalog.CommunityQAPairs, catalog.CommunityDiscussions},
		communityBucketCap, isCommunity)

	india := s.bucketPass(ctx, vector, p,
		[]string{catalog.CommunityQAPairs, catalog.CommunityDiscussions, catalog.MedicalCommunity},
		indiaBucketCap, func(c candidate.Candidate) bool {
			return c.Document().Meta().IndiaSpecific && !isCommunity(c)
		})

	medical := s.bucketPass(ctx, vector, p,
		[]string{catalog.MedicalAuthoritative, catalog.MedicalClinical, catalog.MedicalCommunity},
		medicalBucketCap, isMedicalAuthority)

	return Buckets{Community: community, India: india, Medical: medical}, nil
}

// bucketPass fans out over the bucket's collections, keeps only candidates
// matching the bucket predicate, and caps the sorted result. The returned
// slice is never nil.
func (s *Service) bucketPass(
	ctx context.Context,
	vector []float32,
	p plan.QueryPlan,
	collections []string,
	limit int,
	keep func(candidate.Candidate) bool,
) []candidate.Candidate {
	pooled := s.fanOut(ctx, vector, collections, min(limit*2, maxPerCollection), p)

	kept := make([]candidate.Candidate, 0, len(pooled))
	for _, c := range pooled {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	sortByScore(kept)
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// isCommunity reports whether a candidate's attribution matches the
// community/discussion pattern.
func isCommunity(c candidate.Candidate) bool {
	source := strings.ToLower(c.Source())
	return strings.HasPrefix(c.Collection(), "community_") ||
		strings.Contains(source, "community") ||
		strings.Contains(source, "discussion") ||
		strings.Contains(source, "forum")
}

// isMedicalAuthority reports whether the collection or source carries a
// medical-authority pattern.
func isMedicalAuthority(c candidate.Candidate) bool {
	return strings.HasPrefix(c.Collection(), "medical_") ||
		strings.Contains(strings.ToLower(c.Source()), "medical")
}
