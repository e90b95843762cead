package retrieval

import "github.com/carecompass/compass/internal/domain/candidate"

// contentKeyLen is the prefix length used for duplicate detection across
// multi-stage searches.
const contentKeyLen = 100

// dedupeByContent drops candidates whose content prefix was already seen.
// First occurrence wins, preserving input order.
func dedupeByContent(cands []candidate.Candidate) []candidate.Candidate {
	seen := make(map[string]struct{}, len(cands))
	out := make([]candidate.Candidate, 0, len(cands))
	for _, c := range cands {
		key := contentKey(c.Document().Content())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func contentKey(content string) string {
	runes := []rune(content)
	if len(runes) > contentKeyLen {
		runes = runes[:contentKeyLen]
	}
	return string(runes)
}
