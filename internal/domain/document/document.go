package document

import (
	"fmt"
	"regexp"
	"sort"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 163840 // 160KB

// DefaultTrustScore is assumed for documents stored without an explicit one.
const DefaultTrustScore = 5

// ContentType classifies how a document was produced.
type ContentType string

const (
	// TypeQAPair is a question-answer pair extracted from community threads.
	TypeQAPair ContentType = "qa_pair"
	// TypeDiscussion is a general community discussion chunk.
	TypeDiscussion ContentType = "discussion"
	// TypeEmergencyCase is a community emergency narrative.
	TypeEmergencyCase ContentType = "emergency_case"
	// TypeMedicalAuthority is content from a vetted medical organization.
	TypeMedicalAuthority ContentType = "medical_authority"
	// TypeGeneral is unclassified content.
	TypeGeneral ContentType = "general"
)

// IsValid checks if the content type is one of the known values.
func (t ContentType) IsValid() bool {
	switch t {
	case TypeQAPair, TypeDiscussion, TypeEmergencyCase, TypeMedicalAuthority, TypeGeneral:
		return true
	}
	return false
}

// Metadata is the typed document metadata, decoded once at the store
// boundary. Lists are native slices, never string-encoded.
type Metadata struct {
	Source        string
	TrustScore    int // 1-10; 0 means "not set"
	IndiaSpecific bool
	Emergency     bool
	ContentType   ContentType
	Tags          []string
	Costs         []float64
}

// HasTag reports whether the tag set contains t.
func (m Metadata) HasTag(t string) bool {
	for _, tag := range m.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// Trust returns the trust score, falling back to DefaultTrustScore when unset.
func (m Metadata) Trust() int {
	if m.TrustScore == 0 {
		return DefaultTrustScore
	}
	return m.TrustScore
}

// Document is an immutable stored document (value object).
type Document struct {
	id      string
	content string
	meta    Metadata
	vector  []float32
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Content: non-empty, max 160KB.
// TrustScore: 0 (unset) or 1-10.
func New(id, content string, meta Metadata) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if content == "" {
		return Document{}, fmt.Errorf("content is required")
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}
	if meta.TrustScore < 0 || meta.TrustScore > 10 {
		return Document{}, fmt.Errorf("trust score must be in 1-10, got %d", meta.TrustScore)
	}
	if meta.ContentType == "" {
		meta.ContentType = TypeGeneral
	}
	if !meta.ContentType.IsValid() {
		return Document{}, fmt.Errorf("invalid content type: %q", meta.ContentType)
	}
	meta.Tags = dedupTags(meta.Tags)

	return Document{id: id, content: content, meta: meta}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, content string, meta Metadata, vector []float32) Document {
	return Document{id: id, content: content, meta: meta, vector: vector}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Content returns the document text body.
func (d Document) Content() string { return d.content }

// Meta returns the typed metadata.
func (d Document) Meta() Metadata { return d.meta }

// Vector returns the embedding vector.
func (d Document) Vector() []float32 { return d.vector }

// WithVector returns a copy with the given vector set.
func (d Document) WithVector(v []float32) Document {
	return Document{id: d.id, content: d.content, meta: d.meta, vector: v}
}

func dedupTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
