package retrieval

import (
	"context"

	"github.com/carecompass/compass/internal/domain"
	"github.com/carecompass/compass/internal/domain/candidate"
)

// Searcher runs a nearest-neighbor query against one collection and
// returns unscored candidates carrying raw distances.
type Searcher interface {
	QueryCollection(ctx context.Context, collection string, vector []float32, k int) ([]candidate.Candidate, error)
}

// Embedder maps query text to a fixed-dimensionality vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
