// Package plan defines the query execution plan produced by the analyzer
// and consumed by the retrieval orchestrator. Plans are transient: one per
// incoming query, never persisted.
package plan

// QueryType classifies the incoming query.
type QueryType string

const (
	// Simple is a single-topic question.
	Simple QueryType = "simple"
	// Complex spans several topics or is long-form.
	Complex QueryType = "complex"
	// Emergency needs the urgent fast path.
	Emergency QueryType = "emergency"
	// Comparison asks to weigh options against each other.
	Comparison QueryType = "comparison"
	// OutOfScope was rejected by the relevance gate.
	OutOfScope QueryType = "out_of_scope"
)

// Strategy selects how retrieval is executed.
type Strategy string

const (
	// Focused runs one narrow search (emergencies).
	Focused Strategy = "focused"
	// Broad runs one wide search (default).
	Broad Strategy = "broad"
	// MultiStage runs several staged searches and merges them.
	MultiStage Strategy = "multi-stage"
)

// QueryPlan is the structured interpretation of a free-text query.
type QueryPlan struct {
	QueryType             QueryType
	Categories            []string // never empty; falls back to {"general"}
	Strategy              Strategy
	IndiaPriority         bool
	EmergencyMode         bool
	NeedsCostInfo         bool
	NeedsTechnicalDetails bool
	RequiresMultiSource   bool

	// Set when the plan went through the relevance gate.
	RelevanceScore float64
	MatchedTerms   []string
}

// HasCategory reports whether the plan detected the given topic category.
func (p QueryPlan) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// PrimaryCategory returns the first detected category.
func (p QueryPlan) PrimaryCategory() string {
	if len(p.Categories) == 0 {
		return "general"
	}
	return p.Categories[0]
}
