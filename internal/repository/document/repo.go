package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/carecompass/compass/internal/db"
	"github.com/carecompass/compass/internal/domain"
	"github.com/carecompass/compass/internal/domain/catalog"
	domdoc "github.com/carecompass/compass/internal/domain/document"
)

// store is the consumer interface for document storage (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	DelMulti(ctx context.Context, keys []string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchCount(ctx context.Context, index string) (int, error)
}

// Repo stores documents for the static collection catalog.
type Repo struct {
	store     store
	vectorDim int
	hnswM     int
	hnswEF    int
}

// New creates a document repository.
func New(s store, vectorDim, hnswM, hnswEF int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim, hnswM: hnswM, hnswEF: hnswEF}
}

// EnsureIndexes creates the FT index for every catalog collection.
// Existing indexes are left untouched.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	for _, col := range catalog.All() {
		def := r.indexDefinition(col.Name())
		if err := r.store.CreateIndex(ctx, def); err != nil {
			if errors.Is(err, db.ErrIndexExists) {
				continue
			}
			return fmt.Errorf("create index %s: %w", col.Name(), err)
		}
	}
	return nil
}

// Upsert writes a document into a collection (idempotent by id).
// A document without its own trust score inherits the collection's base
// trust. Returns true if the document was created rather than replaced.
func (r *Repo) Upsert(ctx context.Context, collectionName string, doc domdoc.Document) (bool, error) {
	col, ok := catalog.Get(collectionName)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrCollectionUnknown, collectionName)
	}
	if len(doc.Vector()) != r.vectorDim {
		return false, fmt.Errorf("%w: got %d, want %d",
			domain.ErrVectorDimMismatch, len(doc.Vector()), r.vectorDim)
	}

	meta := doc.Meta()
	if meta.TrustScore == 0 {
		meta.TrustScore = col.BaseTrust()
		doc = domdoc.Reconstruct(doc.ID(), doc.Content(), meta, doc.Vector())
	}

	key := DocKey(collectionName, doc.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, EncodeFields(&doc)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, collectionName, id string) (domdoc.Document, error) {
	if !catalog.Exists(collectionName) {
		return domdoc.Document{}, fmt.Errorf("%w: %s", domain.ErrCollectionUnknown, collectionName)
	}

	key := DocKey(collectionName, id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return DecodeFields(id, fields), nil
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, collectionName, id string) error {
	key := DocKey(collectionName, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of documents in a collection.
func (r *Repo) Count(ctx context.Context, collectionName string) (int, error) {
	if !catalog.Exists(collectionName) {
		return 0, fmt.Errorf("%w: %s", domain.ErrCollectionUnknown, collectionName)
	}
	n, err := r.store.SearchCount(ctx, IndexName(collectionName))
	if err != nil {
		return 0, fmt.Errorf("search count %s: %w", collectionName, err)
	}
	return n, nil
}

// Stats returns per-collection document counts.
func (r *Repo) Stats(ctx context.Context) (map[string]int, error) {
	stats := make(map[string]int, len(catalog.All()))
	for _, col := range catalog.All() {
		n, err := r.Count(ctx, col.Name())
		if err != nil {
			return nil, err
		}
		stats[col.Name()] = n
	}
	return stats, nil
}

// Clear removes every document in a collection. The index stays in place.
func (r *Repo) Clear(ctx context.Context, collectionName string) (int, error) {
	if !catalog.Exists(collectionName) {
		return 0, fmt.Errorf("%w: %s", domain.ErrCollectionUnknown, collectionName)
	}

	keys, err := r.store.Scan(ctx, KeyPattern(collectionName))
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", collectionName, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	if err := r.store.DelMulti(ctx, keys); err != nil {
		return 0, fmt.Errorf("clear %s: %w", collectionName, err)
	}
	return len(keys), nil
}

func (r *Repo) indexDefinition(collectionName string) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     IndexName(collectionName),
		Prefixes: []string{fmt.Sprintf("%s%s:", domain.KeyPrefix, collectionName)},
		Fields: []db.IndexField{
			{Name: FieldContent, Type: db.IndexFieldText},
			{Name: FieldSource, Type: db.IndexFieldTag, TagSeparator: TagSeparator},
			{Name: FieldContentType, Type: db.IndexFieldTag},
			{Name: FieldTags, Type: db.IndexFieldTag, TagSeparator: TagSeparator},
			{Name: FieldTrustScore, Type: db.IndexFieldNumeric},
			{
				Name:              FieldVector,
				Alias:             "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnswM,
				VectorEFConstruct: r.hnswEF,
			},
		},
	}
}
