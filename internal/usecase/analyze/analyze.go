// Package analyze turns free-text caregiver questions into structured
// query plans. Analysis is a pure function over the keyword taxonomy:
// no external state, identical output for identical input.
package analyze

import (
	"sort"
	"strings"

	"github.com/carecompass/compass/internal/domain/plan"
	"github.com/carecompass/compass/internal/domain/taxonomy"
)

// complexWordCount is the question length beyond which a query with a
// question mark counts as complex.
const complexWordCount = 15

// Analyzer classifies queries into execution plans.
type Analyzer struct{}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze derives a QueryPlan from the raw query text.
func (a *Analyzer) Analyze(query string) plan.QueryPlan {
	q := strings.ToLower(strings.TrimSpace(query))

	p := plan.QueryPlan{
		EmergencyMode:         matchesAny(q, taxonomy.EmergencyKeywords),
		IndiaPriority:         matchesAny(q, taxonomy.IndiaKeywords),
		NeedsCostInfo:         matchesAny(q, taxonomy.CostKeywords),
		NeedsTechnicalDetails: matchesAny(q, taxonomy.TechnicalKeywords),
	}
	comparison := matchesAny(q, taxonomy.ComparisonKeywords)

	p.Categories = detectCategories(q)
	p.QueryType = deriveType(q, comparison, p.EmergencyMode, len(p.Categories))
	p.Strategy = deriveStrategy(p.QueryType, len(p.Categories))
	p.RequiresMultiSource = comparison || p.QueryType == plan.Complex

	return p
}

func matchesAny(q string, terms []string) bool {
	for _, term := range terms {
		if taxonomy.Matches(q, term) {
			return true
		}
	}
	return false
}

// detectCategories returns every matched topic category in a stable
// alphabetical order, falling back to {"general"}.
func detectCategories(q string) []string {
	var cats []string
	for name, keywords := range taxonomy.Categories() {
		for _, kw := range keywords {
			if taxonomy.Matches(q, kw) {
				cats = append(cats, name)
				break
			}
		}
	}
	if len(cats) == 0 {
		return []string{"general"}
	}
	sort.Strings(cats)
	return cats
}

// deriveType applies the priority order: emergency wins over comparison,
// comparison over complex, complex over simple.
func deriveType(q string, comparison, emergency bool, categoryCount int) plan.QueryType {
	switch {
	case emergency:
		return plan.Emergency
	case comparison:
		return plan.Comparison
	case categoryCount > 2:
		return plan.Complex
	case strings.Contains(q, "?") && len(strings.Fields(q)) > complexWordCount:
		return plan.Complex
	default:
		return plan.Simple
	}
}

func deriveStrategy(t plan.QueryType, categoryCount int) plan.Strategy {
	switch {
	case t == plan.Emergency:
		return plan.Focused
	case t == plan.Comparison || categoryCount > 2:
		return plan.MultiStage
	default:
		return plan.Broad
	}
}
