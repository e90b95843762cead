package retrieval

import (
	"math"
	"testing"

	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/catalog"
	"github.com/carecompass/compass/internal/domain/document"
	"github.com/carecompass/compass/internal/domain/plan"
)

func testCandidate(id, collection string, meta document.Metadata, distance float64) candidate.Candidate {
	doc := document.Reconstruct(id, "content of "+id, meta, nil)
	return candidate.New(doc, collection, distance, 0)
}

func TestScore_BaseFormula(t *testing.T) {
	s := NewScorer(0, 0)

	// community_qa_pairs has priority 10.
	c := testCandidate("doc-1", catalog.CommunityQAPairs,
		document.Metadata{Source: "forum", TrustScore: 8}, 0.5)

	scored := s.Score(c, plan.QueryPlan{})
	want := (1 / (1 + 0.5)) * (10.0 / 10) * (8.0 / 10)
	if math.Abs(scored.Score()-want) > 1e-12 {
		t.Errorf("score = %v, want %v", scored.Score(), want)
	}
}

func TestScore_DefaultTrust(t *testing.T) {
	s := NewScorer(0, 0)

	// No trust score stored: defaults to 5.
	c := testCandidate("doc-1", catalog.CommunityDiscussions,
		document.Metadata{Source: "forum"}, 0)

	scored := s.Score(c, plan.QueryPlan{})
	want := 1.0 * (7.0 / 10) * (5.0 / 10)
	if math.Abs(scored.Score()-want) > 1e-12 {
		t.Errorf("score = %v, want %v", scored.Score(), want)
	}
}

func TestScore_MonotonicInDistance(t *testing.T) {
	s := NewScorer(0, 0)
	p := plan.QueryPlan{}

	prev := math.Inf(1)
	for _, dist := range []float64{0, 0.1, 0.5, 1, 2, 10} {
		c := testCandidate("doc-1", catalog.MedicalClinical,
			document.Metadata{Source: "journal", TrustScore: 9}, dist)
		score := s.Score(c, p).Score()
		if score >= prev {
			t.Errorf("score not strictly decreasing: %v at distance %v", score, dist)
		}
		prev = score
	}
}

func TestScore_IndiaBoostExactFactor(t *testing.T) {
	s := NewScorer(0, 0)
	p := plan.QueryPlan{IndiaPriority: true}

	plain := testCandidate("doc-a", catalog.CommunityQAPairs,
		document.Metadata{Source: "forum", TrustScore: 8}, 0.3)
	flagged := testCandidate("doc-b", catalog.CommunityQAPairs,
		document.Metadata{Source: "forum", TrustScore: 8, IndiaSpecific: true}, 0.3)

	plainScore := s.Score(plain, p).Score()
	flaggedScore := s.Score(flagged, p).Score()
	if math.Abs(flaggedScore-plainScore*1.5) > 1e-12 {
		t.Errorf("flagged score %v is not exactly 1.5x plain score %v", flaggedScore, plainScore)
	}
}

func TestScore_BoostsRequirePlanFlag(t *testing.T) {
	s := NewScorer(0, 0)

	c := testCandidate("doc-1", catalog.EmergencyExperiences,
		document.Metadata{Source: "forum", TrustScore: 9, IndiaSpecific: true, Emergency: true}, 0.2)

	unboosted := s.Score(c, plan.QueryPlan{}).Score()
	want := (1 / 1.2) * (10.0 / 10) * (9.0 / 10)
	if math.Abs(unboosted-want) > 1e-12 {
		t.Errorf("boosts applied without plan flags: %v, want %v", unboosted, want)
	}

	boosted := s.Score(c, plan.QueryPlan{IndiaPriority: true, EmergencyMode: true}).Score()
	if math.Abs(boosted-want*1.5*2.0) > 1e-12 {
		t.Errorf("combined boosts wrong: %v, want %v", boosted, want*3)
	}
}

func TestScore_UnknownCollection(t *testing.T) {
	s := NewScorer(0, 0)

	c := testCandidate("doc-1", "no_such_collection",
		document.Metadata{Source: "x", TrustScore: 8}, 0.1)
	if got := s.Score(c, plan.QueryPlan{}).Score(); got != 0 {
		t.Errorf("expected zero score for unknown collection, got %v", got)
	}
}
