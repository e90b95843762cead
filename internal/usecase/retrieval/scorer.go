package retrieval

import (
	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/catalog"
	"github.com/carecompass/compass/internal/domain/plan"
)

// Default boost multipliers. Empirically tuned values, exposed as
// configuration rather than semantics.
const (
	DefaultIndiaBoost     = 1.5
	DefaultEmergencyBoost = 2.0
)

// Scorer blends raw nearest-neighbor distance with collection priority,
// document trust, and plan-conditional boosts into one relevance score.
type Scorer struct {
	indiaBoost     float64
	emergencyBoost float64
}

// NewScorer creates a Scorer. Zero boosts fall back to the defaults.
func NewScorer(indiaBoost, emergencyBoost float64) *Scorer {
	if indiaBoost == 0 {
		indiaBoost = DefaultIndiaBoost
	}
	if emergencyBoost == 0 {
		emergencyBoost = DefaultEmergencyBoost
	}
	return &Scorer{indiaBoost: indiaBoost, emergencyBoost: emergencyBoost}
}

// Score returns a copy of the candidate carrying its computed relevance.
//
// The 1/(1+distance) transform keeps the distance component in (0,1],
// strictly monotonic with closeness, and safe at distance 0. Boosts apply
// only when the document carries the flag AND the plan asked for that
// priority, so locale content is never boosted for a query that did not
// mention the locale.
func (s *Scorer) Score(c candidate.Candidate, p plan.QueryPlan) candidate.Candidate {
	col, ok := catalog.Get(c.Collection())
	if !ok {
		return c.WithScore(0)
	}

	meta := c.Document().Meta()
	score := (1 / (1 + c.Distance())) *
		(float64(col.Priority()) / 10) *
		(float64(meta.Trust()) / 10)

	if meta.IndiaSpecific && p.IndiaPriority {
		score *= s.indiaBoost
	}
	if meta.Emergency && p.EmergencyMode {
		score *= s.emergencyBoost
	}

	return c.WithScore(score)
}
