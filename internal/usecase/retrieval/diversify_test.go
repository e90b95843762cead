package retrieval

import (
	"testing"

	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/catalog"
	"github.com/carecompass/compass/internal/domain/document"
)

func scoredCandidate(id, source, collection string, score float64) candidate.Candidate {
	doc := document.Reconstruct(id, "content of "+id, document.Metadata{Source: source}, nil)
	return candidate.New(doc, collection, 0, score)
}

func TestDiversify_CapsLength(t *testing.T) {
	var cands []candidate.Candidate
	for i := 0; i < 10; i++ {
		cands = append(cands, scoredCandidate("doc", "src", catalog.CommunityQAPairs, float64(10-i)))
	}

	got := Diversify(cands, 3)
	if len(got) != 3 {
		t.Errorf("expected 3 results, got %d", len(got))
	}

	got = Diversify(cands[:2], 5)
	if len(got) != 2 {
		t.Errorf("output longer than input: %d", len(got))
	}
}

func TestDiversify_PrefersUnseenSources(t *testing.T) {
	cands := []candidate.Candidate{
		scoredCandidate("a1", "forum-a", catalog.CommunityQAPairs, 0.9),
		scoredCandidate("a2", "forum-a", catalog.CommunityQAPairs, 0.8),
		scoredCandidate("a3", "forum-a", catalog.CommunityQAPairs, 0.7),
		scoredCandidate("b1", "journal-b", catalog.MedicalAuthoritative, 0.2),
	}

	got := Diversify(cands, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Document().ID() != "a1" {
		t.Errorf("expected top candidate first, got %s", got[0].Document().ID())
	}
	// The lower-scored unseen source beats the duplicates of forum-a.
	if got[1].Document().ID() != "b1" {
		t.Errorf("expected unseen source second, got %s", got[1].Document().ID())
	}
}

func TestDiversify_SecondPassFills(t *testing.T) {
	cands := []candidate.Candidate{
		scoredCandidate("a1", "forum-a", catalog.CommunityQAPairs, 0.9),
		scoredCandidate("a2", "forum-a", catalog.CommunityQAPairs, 0.8),
		scoredCandidate("a3", "forum-a", catalog.CommunityQAPairs, 0.7),
	}

	got := Diversify(cands, 3)
	if len(got) != 3 {
		t.Fatalf("expected pass 2 to fill to 3, got %d", len(got))
	}
	// Fill order preserves relevance order.
	for i, want := range []string{"a1", "a2", "a3"} {
		if got[i].Document().ID() != want {
			t.Errorf("slot %d = %s, want %s", i, got[i].Document().ID(), want)
		}
	}
}

func TestDiversify_KeepsUniqueSources(t *testing.T) {
	cands := []candidate.Candidate{
		scoredCandidate("a", "src-a", catalog.CommunityQAPairs, 0.9),
		scoredCandidate("b", "src-b", catalog.CommunityQAPairs, 0.8),
		scoredCandidate("c", "src-c", catalog.CommunityDiscussions, 0.7),
	}

	got := Diversify(cands, 3)
	seen := map[string]bool{}
	for _, c := range got {
		seen[c.Source()] = true
	}
	for _, src := range []string{"src-a", "src-b", "src-c"} {
		if !seen[src] {
			t.Errorf("unique source %s was dropped", src)
		}
	}
}

func TestDiversify_NewCollectionAdmits(t *testing.T) {
	// Same source but a new collection still qualifies for pass 1.
	cands := []candidate.Candidate{
		scoredCandidate("a", "src-a", catalog.CommunityQAPairs, 0.9),
		scoredCandidate("b", "src-a", catalog.MedicalAuthoritative, 0.8),
	}

	got := Diversify(cands, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[1].Document().ID() != "b" {
		t.Errorf("expected same-source new-collection candidate admitted, got %s", got[1].Document().ID())
	}
}

func TestDiversify_ZeroMax(t *testing.T) {
	cands := []candidate.Candidate{scoredCandidate("a", "s", catalog.CommunityQAPairs, 1)}
	if got := Diversify(cands, 0); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}
