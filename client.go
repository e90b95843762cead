// Package compass provides an embedded ingestion client for the
// caregiver knowledge base. It connects straight to the document store
// and is meant for loaders and maintenance scripts; question answering
// goes through the HTTP API.
package compass

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carecompass/compass/internal/db"
	dbRedis "github.com/carecompass/compass/internal/db/redis"
	"github.com/carecompass/compass/internal/domain"
	"github.com/carecompass/compass/internal/domain/catalog"
	domdoc "github.com/carecompass/compass/internal/domain/document"
	documentrepo "github.com/carecompass/compass/internal/repository/document"
	"github.com/carecompass/compass/internal/repository/embcache"
	openaiTransport "github.com/carecompass/compass/internal/transport/openai"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the knowledge base ingestion entry point.
type Client struct {
	store    db.Store
	docs     *documentrepo.Repo
	embedder domain.Embedder
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		dimensions: 1536,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("compass: database address required (use WithRedis)")
	}
	if cfg.embedder == nil && cfg.openAIKey == "" {
		return nil, errors.New("compass: embedder required (use WithOpenAI or WithEmbedder)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("compass: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("compass: database not ready: %w", err)
	}

	embedder := cfg.embedder
	if embedder == nil {
		var base domain.Embedder = openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:     cfg.openAIKey,
			Model:      cfg.embeddingModel,
			Dimensions: cfg.dimensions,
			Provider:   "openai",
			Logger:     zap.NewNop(),
		})
		if cfg.cache {
			base = embcache.New(base, store, nil, zap.NewNop())
		}
		embedder = base
	}

	docs := documentrepo.New(store, cfg.dimensions, cfg.hnswM, cfg.hnswEFConstruct)
	if err := docs.EnsureIndexes(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("compass: ensure indexes: %w", err)
	}

	return &Client{store: store, docs: docs, embedder: embedder}, nil
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}

// Upsert embeds and stores a document in the named collection.
// Returns true when the document was created rather than replaced.
func (c *Client) Upsert(ctx context.Context, collection string, doc Document) (bool, error) {
	if !catalog.Exists(collection) {
		return false, fmt.Errorf("compass: unknown collection %q", collection)
	}

	d, err := domdoc.New(doc.ID, doc.Content, domdoc.Metadata{
		Source:        doc.Source,
		TrustScore:    doc.TrustScore,
		IndiaSpecific: doc.IndiaSpecific,
		Emergency:     doc.Emergency,
		ContentType:   domdoc.ContentType(doc.ContentType),
		Tags:          doc.Tags,
		Costs:         doc.Costs,
	})
	if err != nil {
		return false, fmt.Errorf("compass: build document: %w", err)
	}

	res, err := c.embedder.Embed(ctx, doc.Content)
	if err != nil {
		return false, fmt.Errorf("compass: embed document: %w", err)
	}

	created, err := c.docs.Upsert(ctx, collection, d.WithVector(res.Embedding))
	if err != nil {
		return false, fmt.Errorf("compass: upsert: %w", err)
	}
	return created, nil
}

// Get returns a stored document.
func (c *Client) Get(ctx context.Context, collection, id string) (Document, error) {
	d, err := c.docs.Get(ctx, collection, id)
	if err != nil {
		return Document{}, fmt.Errorf("compass: get: %w", err)
	}
	meta := d.Meta()
	return Document{
		ID:            d.ID(),
		Content:       d.Content(),
		Source:        meta.Source,
		TrustScore:    meta.TrustScore,
		IndiaSpecific: meta.IndiaSpecific,
		Emergency:     meta.Emergency,
		ContentType:   string(meta.ContentType),
		Tags:          meta.Tags,
		Costs:         meta.Costs,
	}, nil
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if err := c.docs.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("compass: delete: %w", err)
	}
	return nil
}

// Clear removes every document in a collection and returns how many were deleted.
func (c *Client) Clear(ctx context.Context, collection string) (int, error) {
	n, err := c.docs.Clear(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("compass: clear: %w", err)
	}
	return n, nil
}

// Stats returns per-collection document counts.
func (c *Client) Stats(ctx context.Context) (map[string]int, error) {
	stats, err := c.docs.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compass: stats: %w", err)
	}
	return stats, nil
}

// Collections lists the known collection names.
func (c *Client) Collections() []string {
	cols := catalog.All()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name()
	}
	return names
}

// Document is the ingestion payload.
type Document struct {
	ID            string
	Content       string
	Source        string
	TrustScore    int
	IndiaSpecific bool
	Emergency     bool
	ContentType   string
	Tags          []string
	Costs         []float64
}
