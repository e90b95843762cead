package answer

import (
	"context"

	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/plan"
	"github.com/carecompass/compass/internal/usecase/retrieval"
)

// Gate decides whether a query is in scope before any retrieval happens.
type Gate interface {
	Check(query string) (bool, float64, []string)
}

// Analyzer turns raw query text into an execution plan.
type Analyzer interface {
	Analyze(query string) plan.QueryPlan
}

// Retriever executes the plan against the collection store.
type Retriever interface {
	Retrieve(ctx context.Context, query string, p plan.QueryPlan) ([]candidate.Candidate, error)
	RetrieveBuckets(ctx context.Context, query string, p plan.QueryPlan) (retrieval.Buckets, error)
}

// Generator is the opaque text generation capability.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
