package retrieval

import "github.com/carecompass/compass/internal/domain/candidate"

// Diversify selects up to maxResults candidates from a score-sorted list,
// trading strict top-k relevance for source variety.
//
// Pass 1 admits a candidate if its source OR its collection has not been
// admitted yet, so one dominant source cannot monopolize the top slots.
// Pass 2 fills any remaining capacity with the next-best candidates
// regardless of diversity. A lower-scored document from an unseen source
// can therefore rank ahead of a higher-scored one from a seen source.
func Diversify(sorted []candidate.Candidate, maxResults int) []candidate.Candidate {
	if maxResults <= 0 {
		return nil
	}

	diversified := make([]candidate.Candidate, 0, min(maxResults, len(sorted)))
	picked := make([]bool, len(sorted))
	seenSources := make(map[string]struct{})
	seenCollections := make(map[string]struct{})

	for i, c := range sorted {
		if len(diversified) >= maxResults {
			break
		}
		_, sourceSeen := seenSources[c.Source()]
		_, collectionSeen := seenCollections[c.Collection()]
		if !sourceSeen || !collectionSeen {
			diversified = append(diversified, c)
			picked[i] = true
			seenSources[c.Source()] = struct{}{}
			seenCollections[c.Collection()] = struct{}{}
		}
	}

	for i, c := range sorted {
		if len(diversified) >= maxResults {
			break
		}
		if !picked[i] {
			diversified = append(diversified, c)
			picked[i] = true
		}
	}

	return diversified
}
