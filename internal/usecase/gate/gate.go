// Package gate implements the in-domain relevance gate. It runs before any
// retrieval or generation work so out-of-scope questions never consume
// embedding or completion quota.
package gate

import (
	"sort"
	"strings"

	"github.com/carecompass/compass/internal/domain/taxonomy"
)

const (
	// DefaultThreshold is the minimum score for a query to count as
	// in-domain: one unambiguous keyword hit, or two weaker signals.
	DefaultThreshold = 0.5

	exactMatchWeight   = 1.0
	correctionWeight   = 0.8
	patternWeight      = 0.5
	diversityBonusStep = 0.5
)

// Gate scores free-text queries against the caregiver keyword taxonomy.
type Gate struct {
	threshold float64
}

// New creates a Gate. A zero threshold falls back to DefaultThreshold.
func New(threshold float64) *Gate {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return &Gate{threshold: threshold}
}

// Check classifies the query as in-domain or out-of-domain. It returns the
// verdict, the raw score, and the terms that contributed to it. A pure
// function of the input text: identical input yields identical output.
func (g *Gate) Check(query string) (bool, float64, []string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false, 0, nil
	}

	var (
		score   float64
		matched []string
	)

	q, corrections := applyCorrections(q)
	score += float64(len(corrections)) * correctionWeight
	matched = append(matched, corrections...)

	keywordHits, categoriesHit := scanCategories(q)
	score += float64(len(keywordHits)) * exactMatchWeight
	matched = append(matched, keywordHits...)

	if pattern := firstPattern(q); pattern != "" {
		score += patternWeight
		matched = append(matched, pattern)
	}

	if categoriesHit > 1 {
		score += float64(categoriesHit-1) * diversityBonusStep
	}

	return score >= g.threshold, score, matched
}

// applyCorrections rewrites known misspellings to their canonical form and
// returns the corrected tokens. Each correction is a weighted partial match,
// weaker than an exact keyword hit.
func applyCorrections(q string) (string, []string) {
	misspelled := make([]string, 0, len(taxonomy.Misspellings))
	for m := range taxonomy.Misspellings {
		misspelled = append(misspelled, m)
	}
	sort.Strings(misspelled)

	var corrections []string
	for _, wrong := range misspelled {
		if strings.Contains(q, wrong) {
			right := taxonomy.Misspellings[wrong]
			q = strings.ReplaceAll(q, wrong, right)
			corrections = append(corrections, right)
		}
	}
	return q, corrections
}

// scanCategories returns every matched keyword across the gate categories
// and the number of distinct categories that matched.
func scanCategories(q string) ([]string, int) {
	table := taxonomy.GateCategories()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		hits       []string
		categories int
	)
	for _, name := range names {
		hitInCategory := false
		for _, kw := range table[name] {
			if taxonomy.Matches(q, kw) {
				hits = append(hits, kw)
				hitInCategory = true
			}
		}
		if hitInCategory {
			categories++
		}
	}
	return hits, categories
}

// firstPattern returns the first matching generic question pattern, or "".
// Multiple pattern matches still contribute a single flat score.
func firstPattern(q string) string {
	for _, p := range taxonomy.QuestionPatterns {
		if strings.Contains(q, p) {
			return p
		}
	}
	return ""
}
