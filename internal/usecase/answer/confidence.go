package answer

import (
	"github.com/carecompass/compass/internal/domain/candidate"
	"github.com/carecompass/compass/internal/domain/document"
	"github.com/carecompass/compass/internal/domain/plan"
)

// confidenceWindow is how many top documents the confidence factors look at.
const confidenceWindow = 5

// calculateConfidence grades an answer by the quality of its evidence:
// average source trust, locale match, Q&A pair coverage, and citation
// count, on top of a 0.5 base.
func calculateConfidence(docs []candidate.Candidate, citations []Citation, p plan.QueryPlan) string {
	if len(docs) == 0 {
		return ConfidenceLow
	}

	window := docs
	if len(window) > confidenceWindow {
		window = window[:confidenceWindow]
	}

	score := 0.5

	var trustSum int
	for _, c := range window {
		trustSum += c.Document().Meta().Trust()
	}
	// Averaging over the actual window size means one trusted source out
	// of two counts the same as three out of five. Labels for short result
	// sets are therefore a notch more generous than for full windows.
	avgTrust := float64(trustSum) / float64(len(window))
	score += (avgTrust - 5) / 5 * 0.2

	if p.IndiaPriority {
		indiaDocs := 0
		for _, c := range window {
			if c.Document().Meta().IndiaSpecific {
				indiaDocs++
			}
		}
		if indiaDocs >= 2 {
			score += 0.15
		}
	}

	qaCount := 0
	for _, c := range window {
		if c.Document().Meta().ContentType == document.TypeQAPair {
			qaCount++
		}
	}
	if qaCount >= 2 {
		score += 0.15
	}

	if len(citations) >= 3 {
		score += 0.1
	}

	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
