package document

import (
	"testing"

	domdoc "github.com/carecompass/compass/internal/domain/document"
)

func TestDocKey(t *testing.T) {
	if got := DocKey("community_qa_pairs", "qa-001"); got != "compass:community_qa_pairs:qa-001" {
		t.Errorf("DocKey = %q", got)
	}
}

func TestIndexName(t *testing.T) {
	if got := IndexName("medical_clinical"); got != "compass:medical_clinical:idx" {
		t.Errorf("IndexName = %q", got)
	}
}

func TestExtractDocID(t *testing.T) {
	got := ExtractDocID("compass:community_qa_pairs:qa-001", "community_qa_pairs")
	if got != "qa-001" {
		t.Errorf("ExtractDocID = %q", got)
	}
}

func TestEncodeDecodeFields(t *testing.T) {
	doc, err := domdoc.New("qa-001", "BiPAP helps at night.", domdoc.Metadata{
		Source:        "ALS caregivers forum",
		TrustScore:    8,
		IndiaSpecific: true,
		Emergency:     false,
		ContentType:   domdoc.TypeQAPair,
		Tags:          []string{"breathing", "bipap"},
		Costs:         []float64{45000, 52000.5},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	doc = doc.WithVector([]float32{0.1, -0.5, 2.25})

	fields := EncodeFields(&doc)
	if fields[FieldTrustScore] != "8" {
		t.Errorf("trust field = %q", fields[FieldTrustScore])
	}
	if fields[FieldIndia] != "1" || fields[FieldEmergency] != "0" {
		t.Errorf("flag fields = %q / %q", fields[FieldIndia], fields[FieldEmergency])
	}
	if fields[FieldTags] != "breathing,bipap" {
		t.Errorf("tags field = %q", fields[FieldTags])
	}
	if fields[FieldCosts] != "45000,52000.5" {
		t.Errorf("costs field = %q", fields[FieldCosts])
	}

	got := DecodeFields("qa-001", fields)
	meta := got.Meta()
	if got.Content() != "BiPAP helps at night." {
		t.Errorf("Content = %q", got.Content())
	}
	if meta.Source != "ALS caregivers forum" || meta.TrustScore != 8 {
		t.Errorf("meta = %+v", meta)
	}
	if !meta.IndiaSpecific || meta.Emergency {
		t.Errorf("flags = %+v", meta)
	}
	if meta.ContentType != domdoc.TypeQAPair {
		t.Errorf("ContentType = %q", meta.ContentType)
	}
	if len(meta.Tags) != 2 || len(meta.Costs) != 2 {
		t.Errorf("lists = %v / %v", meta.Tags, meta.Costs)
	}
	if len(got.Vector()) != 3 || got.Vector()[2] != 2.25 {
		t.Errorf("Vector = %v", got.Vector())
	}
}

func TestEncodeFields_UnsetTrustUsesDefault(t *testing.T) {
	doc, err := domdoc.New("d1", "content", domdoc.Metadata{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	fields := EncodeFields(&doc)
	if fields[FieldTrustScore] != "5" {
		t.Errorf("trust field = %q, want default 5", fields[FieldTrustScore])
	}
}

func TestDecodeFields_Garbage(t *testing.T) {
	got := DecodeFields("d1", map[string]string{
		FieldContent:     "content",
		FieldTrustScore:  "not-a-number",
		FieldContentType: "podcast",
		FieldCosts:       "abc,def",
	})

	meta := got.Meta()
	if meta.TrustScore != 0 {
		t.Errorf("TrustScore = %d, want 0 for unparseable value", meta.TrustScore)
	}
	if meta.ContentType != domdoc.TypeGeneral {
		t.Errorf("ContentType = %q, want fallback to general", meta.ContentType)
	}
	if meta.Costs != nil {
		t.Errorf("Costs = %v, want nil for unparseable list", meta.Costs)
	}
}

func TestDecodeFields_TrustOutOfRangeIgnored(t *testing.T) {
	got := DecodeFields("d1", map[string]string{FieldContent: "c", FieldTrustScore: "42"})
	if got.Meta().TrustScore != 0 {
		t.Errorf("TrustScore = %d, want 0", got.Meta().TrustScore)
	}
	// the Trust accessor then falls back to the default
	if got.Meta().Trust() != domdoc.DefaultTrustScore {
		t.Errorf("Trust() = %d", got.Meta().Trust())
	}
}

func TestVectorRoundTrip(t *testing.T) {
	v := []float32{0, 1.5, -3.25, 1e-8}
	got := BytesToVector(VectorToBytes(v))
	if len(got) != len(v) {
		t.Fatalf("length = %d", len(got))
	}
	for i := range v {
		if got[i] != v[i] {
			t.Errorf("index %d: %v != %v", i, got[i], v[i])
		}
	}
}

func TestBytesToVector_BadLength(t *testing.T) {
	if v := BytesToVector("abc"); v != nil {
		t.Errorf("expected nil for truncated payload, got %v", v)
	}
}
