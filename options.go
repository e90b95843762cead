package compass

import "github.com/carecompass/compass/internal/domain"

// Option configures the ingestion client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	openAIKey      string
	embeddingModel string
	dimensions     int
	cache          bool
	embedder       domain.Embedder

	hnswM           int
	hnswEFConstruct int
}

// WithRedis sets the Redis connection addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithAuth sets database credentials.
func WithAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithDB selects the Redis logical database.
func WithDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithOpenAI configures the OpenAI embedding backend.
// dimensions 0 keeps the default (1536).
func WithOpenAI(apiKey, model string, dimensions int) Option {
	return func(c *clientConfig) {
		c.openAIKey = apiKey
		c.embeddingModel = model
		if dimensions > 0 {
			c.dimensions = dimensions
		}
	}
}

// WithEmbeddingCache caches embeddings in the same store to skip
// re-embedding unchanged documents on reingestion.
func WithEmbeddingCache() Option {
	return func(c *clientConfig) {
		c.cache = true
	}
}

// WithEmbedder replaces the embedding backend entirely.
func WithEmbedder(e domain.Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithHNSW overrides HNSW index construction parameters.
func WithHNSW(m, efConstruct int) Option {
	return func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	}
}
