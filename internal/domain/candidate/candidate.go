// Package candidate defines the scored retrieval candidate: a document,
// the collection it came from, and its computed relevance. Candidates
// exist only for the duration of one retrieval call.
package candidate

import "github.com/carecompass/compass/internal/domain/document"

// Candidate is a retrieved document with its relevance score (value object).
type Candidate struct {
	doc        document.Document
	collection string
	distance   float64
	score      float64
}

// New creates a scored candidate.
func New(doc document.Document, collection string, distance, score float64) Candidate {
	return Candidate{doc: doc, collection: collection, distance: distance, score: score}
}

// Document returns the underlying document.
func (c Candidate) Document() document.Document { return c.doc }

// Collection returns the originating collection name.
func (c Candidate) Collection() string { return c.collection }

// Distance returns the raw nearest-neighbor distance.
func (c Candidate) Distance() float64 { return c.distance }

// Score returns the blended relevance score.
func (c Candidate) Score() float64 { return c.score }

// Source returns the document's source attribution.
func (c Candidate) Source() string { return c.doc.Meta().Source }

// WithScore returns a copy carrying the given score.
func (c Candidate) WithScore(s float64) Candidate {
	return Candidate{doc: c.doc, collection: c.collection, distance: c.distance, score: s}
}
