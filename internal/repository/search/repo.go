// Package search adapts the FT KNN search into unscored retrieval
// candidates. Relevance scoring happens in the retrieval usecase.
package search

import (
	"context"
	"fmt"

	"github.com/carecompass/compass/internal/db"
	"github.com/carecompass/compass/internal/domain"
	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/catalog"
	docrepo "github.com/carecompass/compass/internal/repository/document"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements usecase/retrieval.Searcher.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// metadataFields are returned by KNN queries. The vector itself is not
// fetched: candidates never need it.
var metadataFields = []string{
	docrepo.FieldContent,
	docrepo.FieldSource,
	docrepo.FieldTrustScore,
	docrepo.FieldIndia,
	docrepo.FieldEmergency,
	docrepo.FieldContentType,
	docrepo.FieldTags,
	docrepo.FieldCosts,
	"__vector_score",
}

// QueryCollection runs a nearest-neighbor query against one collection and
// returns unscored candidates with their raw distances, closest first.
func (r *Repo) QueryCollection(
	ctx context.Context, collectionName string, vector []float32, k int,
) ([]candidate.Candidate, error) {
	if !catalog.Exists(collectionName) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionUnknown, collectionName)
	}

	q := &db.KNNQuery{
		IndexName:    docrepo.IndexName(collectionName),
		Vector:       vector,
		K:            k,
		ReturnFields: metadataFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", collectionName, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	out := make([]candidate.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := docrepo.ExtractDocID(entry.Key, collectionName)
		doc := docrepo.DecodeFields(id, entry.Fields)
		out = append(out, candidate.New(doc, collectionName, entry.Distance, 0))
	}
	return out, nil
}
