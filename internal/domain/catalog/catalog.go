// Package catalog defines the static collection table. Collections are
// fixed at process start; only their contents change at runtime.
package catalog

// Collection names.
const (
	CommunityQAPairs     = "community_qa_pairs"
	EmergencyExperiences = "emergency_experiences"
	CommunityDiscussions = "community_discussions"
	MedicalAuthoritative = "medical_authoritative"
	MedicalClinical      = "medical_clinical"
	MedicalCommunity     = "medical_community"
)

// Collection is a statically configured document partition (immutable value object).
type Collection struct {
	name        string
	description string
	priority    int // relative trust of this partition's content type, 1-10
	baseTrust   int // trust assigned to documents ingested without their own score, 1-10
}

// Name returns the collection name.
func (c Collection) Name() string { return c.name }

// Description returns the human-readable description.
func (c Collection) Description() string { return c.description }

// Priority returns the partition priority weight (1-10).
func (c Collection) Priority() int { return c.priority }

// BaseTrust returns the default trust score for documents without one.
func (c Collection) BaseTrust() int { return c.baseTrust }

var table = []Collection{
	{CommunityQAPairs, "Question-answer pairs from the caregiver community", 10, 8},
	{EmergencyExperiences, "Emergency situations and responses", 10, 9},
	{CommunityDiscussions, "General community discussions", 7, 7},
	{MedicalAuthoritative, "Tier 1 medical sources", 9, 10},
	{MedicalClinical, "Tier 2 clinical guidelines", 8, 9},
	{MedicalCommunity, "Tier 3 support organizations", 7, 8},
}

var byName = func() map[string]Collection {
	m := make(map[string]Collection, len(table))
	for _, c := range table {
		m[c.name] = c
	}
	return m
}()

// All returns every collection in declaration order.
func All() []Collection {
	out := make([]Collection, len(table))
	copy(out, table)
	return out
}

// Get returns the collection with the given name.
func Get(name string) (Collection, bool) {
	c, ok := byName[name]
	return c, ok
}

// Exists reports whether name is in the catalog.
func Exists(name string) bool {
	_, ok := byName[name]
	return ok
}
