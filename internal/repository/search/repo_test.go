package search

import (
	"context"
	"errors"
	"testing"

	"github.com/carecompass/compass/internal/db"
	"github.com/carecompass/compass/internal/domain"
	"github.com/carecompass/compass/internal/domain/catalog"
	docrepo "github.com/carecompass/compass/internal/repository/document"
)

type mockStore struct {
	lastQuery *db.KNNQuery
	result    *db.SearchResult
	err       error
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastQuery = q
	return m.result, m.err
}

func TestQueryCollection(t *testing.T) {
	ms := &mockStore{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{
				Key:      "compass:community_qa_pairs:qa-1",
				Distance: 0.12,
				Fields: map[string]string{
					docrepo.FieldContent:    "BiPAP basics",
					docrepo.FieldSource:     "forum",
					docrepo.FieldTrustScore: "8",
					docrepo.FieldIndia:      "1",
				},
			},
			{
				Key:      "compass:community_qa_pairs:qa-2",
				Distance: 0.4,
				Fields: map[string]string{
					docrepo.FieldContent: "CPAP basics",
				},
			},
		},
	}}
	repo := New(ms)

	got, err := repo.QueryCollection(context.Background(), catalog.CommunityQAPairs, []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("QueryCollection() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates", len(got))
	}

	first := got[0]
	if first.Document().ID() != "qa-1" {
		t.Errorf("ID = %q", first.Document().ID())
	}
	if first.Collection() != catalog.CommunityQAPairs {
		t.Errorf("Collection = %q", first.Collection())
	}
	if first.Distance() != 0.12 {
		t.Errorf("Distance = %v", first.Distance())
	}
	if first.Score() != 0 {
		t.Errorf("Score = %v, candidates come back unscored", first.Score())
	}
	if !first.Document().Meta().IndiaSpecific {
		t.Error("metadata must be decoded")
	}

	if ms.lastQuery.IndexName != docrepo.IndexName(catalog.CommunityQAPairs) {
		t.Errorf("IndexName = %q", ms.lastQuery.IndexName)
	}
	if ms.lastQuery.K != 5 {
		t.Errorf("K = %d", ms.lastQuery.K)
	}
}

func TestQueryCollection_UnknownCollection(t *testing.T) {
	repo := New(&mockStore{})

	_, err := repo.QueryCollection(context.Background(), "bogus", []float32{1}, 5)
	if !errors.Is(err, domain.ErrCollectionUnknown) {
		t.Errorf("err = %v, want ErrCollectionUnknown", err)
	}
}

func TestQueryCollection_EmptyResult(t *testing.T) {
	repo := New(&mockStore{result: &db.SearchResult{Total: 0}})

	got, err := repo.QueryCollection(context.Background(), catalog.MedicalClinical, []float32{1}, 5)
	if err != nil {
		t.Fatalf("QueryCollection() error: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestQueryCollection_StoreError(t *testing.T) {
	repo := New(&mockStore{err: errors.New("index missing")})

	_, err := repo.QueryCollection(context.Background(), catalog.MedicalClinical, []float32{1}, 5)
	if err == nil {
		t.Fatal("expected error")
	}
}
