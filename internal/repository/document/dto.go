package document

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/carecompass/compass/internal/domain"
	domdoc "github.com/carecompass/compass/internal/domain/document"
)

// Hash field names. Double-underscore fields are internal to the engine
// schema; the rest is document metadata.
const (
	FieldContent = "__content"
	FieldVector  = "__vector"

	FieldSource      = "source"
	FieldTrustScore  = "trust_score"
	FieldIndia       = "india_specific"
	FieldEmergency   = "emergency"
	FieldContentType = "content_type"
	FieldTags        = "tags"
	FieldCosts       = "costs"
)

// TagSeparator joins tag and cost lists inside hash fields. Lists are
// native slices everywhere above this boundary.
const TagSeparator = ","

// DocKey builds the Redis key for a document.
func DocKey(collection, id string) string {
	return fmt.Sprintf("%s%s:%s", domain.KeyPrefix, collection, id)
}

// IndexName builds the FT index name for a collection.
func IndexName(collection string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, collection)
}

// KeyPattern builds the SCAN pattern matching every document in a collection.
func KeyPattern(collection string) string {
	return fmt.Sprintf("%s%s:*", domain.KeyPrefix, collection)
}

// ExtractDocID strips the key prefix, leaving the caller-supplied id.
func ExtractDocID(key, collection string) string {
	return strings.TrimPrefix(key, fmt.Sprintf("%s%s:", domain.KeyPrefix, collection))
}

// EncodeFields flattens a document into hash fields for HSET.
func EncodeFields(doc *domdoc.Document) map[string]string {
	meta := doc.Meta()
	fields := map[string]string{
		FieldContent:     doc.Content(),
		FieldVector:      VectorToBytes(doc.Vector()),
		FieldSource:      meta.Source,
		FieldTrustScore:  strconv.Itoa(meta.Trust()),
		FieldIndia:       encodeBool(meta.IndiaSpecific),
		FieldEmergency:   encodeBool(meta.Emergency),
		FieldContentType: string(meta.ContentType),
	}
	if len(meta.Tags) > 0 {
		fields[FieldTags] = strings.Join(meta.Tags, TagSeparator)
	}
	if len(meta.Costs) > 0 {
		fields[FieldCosts] = encodeCosts(meta.Costs)
	}
	return fields
}

// DecodeFields rebuilds a document from hash fields. This is the single
// place untyped storage data becomes typed metadata.
func DecodeFields(id string, fields map[string]string) domdoc.Document {
	meta := domdoc.Metadata{
		Source:        fields[FieldSource],
		IndiaSpecific: decodeBool(fields[FieldIndia]),
		Emergency:     decodeBool(fields[FieldEmergency]),
		ContentType:   domdoc.ContentType(fields[FieldContentType]),
	}
	if !meta.ContentType.IsValid() {
		meta.ContentType = domdoc.TypeGeneral
	}
	if v, err := strconv.Atoi(fields[FieldTrustScore]); err == nil && v >= 1 && v <= 10 {
		meta.TrustScore = v
	}
	if raw := fields[FieldTags]; raw != "" {
		meta.Tags = strings.Split(raw, TagSeparator)
	}
	if raw := fields[FieldCosts]; raw != "" {
		meta.Costs = decodeCosts(raw)
	}

	var vector []float32
	if raw := fields[FieldVector]; raw != "" {
		vector = BytesToVector(raw)
	}

	return domdoc.Reconstruct(id, fields[FieldContent], meta, vector)
}

// VectorToBytes serializes a vector into the FLOAT32 LE binary form FT expects.
func VectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// BytesToVector deserializes a binary string to []float32.
func BytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func decodeBool(s string) bool {
	return s == "1" || s == "true"
}

func encodeCosts(costs []float64) string {
	parts := make([]string, len(costs))
	for i, c := range costs {
		parts[i] = strconv.FormatFloat(c, 'f', -1, 64)
	}
	return strings.Join(parts, TagSeparator)
}

func decodeCosts(raw string) []float64 {
	parts := strings.Split(raw, TagSeparator)
	costs := make([]float64, 0, len(parts))
	for _, p := range parts {
		if f, err := strconv.ParseFloat(p, 64); err == nil {
			costs = append(costs, f)
		}
	}
	if len(costs) == 0 {
		return nil
	}
	return costs
}
