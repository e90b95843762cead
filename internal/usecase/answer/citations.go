package answer

import (
	"strings"

	"github.com/carecompass/compass/internal/domain/candidate"
)

const (
	citationScanDocs = 10
	maxCitations     = 5
)

// extractCitations returns the sources the generated response appears to
// draw on: a document is cited when its source name, or any of the first
// three words of it, occurs in the response text. Deduplicated by source,
// capped at maxCitations.
func extractCitations(response string, docs []candidate.Candidate) []Citation {
	responseLower := strings.ToLower(response)

	scan := docs
	if len(scan) > citationScanDocs {
		scan = scan[:citationScanDocs]
	}

	seen := make(map[string]struct{})
	citations := make([]Citation, 0, maxCitations)
	for _, c := range scan {
		source := c.Source()
		if source == "" {
			continue
		}
		if _, dup := seen[source]; dup {
			continue
		}
		if !mentioned(responseLower, source) {
			continue
		}
		seen[source] = struct{}{}
		citations = append(citations, Citation{
			Source:        source,
			TrustScore:    c.Document().Meta().Trust(),
			Collection:    c.Collection(),
			IndiaSpecific: c.Document().Meta().IndiaSpecific,
		})
		if len(citations) == maxCitations {
			break
		}
	}
	return citations
}

func mentioned(responseLower, source string) bool {
	sourceLower := strings.ToLower(source)
	if strings.Contains(responseLower, sourceLower) {
		return true
	}
	words := strings.Fields(sourceLower)
	if len(words) > 3 {
		words = words[:3]
	}
	for _, w := range words {
		if strings.Contains(responseLower, w) {
			return true
		}
	}
	return false
}
