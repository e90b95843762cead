package answer

import "github.com/carecompass/compass/internal/domain/plan"

// Confidence labels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
	// ConfidenceProtocol marks the static emergency protocol response
	// used when the generation capability is unavailable.
	ConfidenceProtocol = "protocol"
	// ConfidenceError marks the technical-difficulty fallback.
	ConfidenceError = "system_error"
	// ConfidenceOutOfScope marks the canned refusal for queries the
	// relevance gate rejected. The refusal itself is certain, but the
	// evidence-graded labels above do not apply to it.
	ConfidenceOutOfScope = "out_of_scope"
)

// Citation attributes part of an answer to a stored source.
type Citation struct {
	Source        string `json:"source"`
	TrustScore    int    `json:"trust_score"`
	Collection    string `json:"collection"`
	IndiaSpecific bool   `json:"india_specific"`
}

// Result is the complete pipeline output for one caregiver query.
type Result struct {
	ResponseText     string         `json:"response_text"`
	Citations        []Citation     `json:"citations"`
	ConfidenceLabel  string         `json:"confidence_label"`
	QueryType        plan.QueryType `json:"query_type"`
	Categories       []string       `json:"categories"`
	SourcesUsedCount int            `json:"sources_used_count"`
	IsEmergency      bool           `json:"is_emergency"`
	RelevanceScore   float64        `json:"relevance_score"`
}
