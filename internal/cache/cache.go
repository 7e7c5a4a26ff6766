package cache

import (
	"context"
	"time"

	"gigmatch/internal/embeddings"
)

// Cache stores the embedded skill-taxonomy matrix between requests. The
// taxonomy is a fixed table, so its vectors depend only on the embedding
// model; caching them avoids re-encoding the whole table on every
// related-skills or validation call. Match and candidate embeddings are
// deliberately never cached: they live for a single request.
type Cache interface {
	// GetTaxonomyVectors returns the cached matrix for a model, or nil on miss.
	GetTaxonomyVectors(ctx context.Context, model string) ([]embeddings.Vector, error)

	// SetTaxonomyVectors stores the matrix for a model with a TTL.
	SetTaxonomyVectors(ctx context.Context, model string, vecs []embeddings.Vector, ttl time.Duration) error

	// Close releases the underlying connection.
	Close() error
}
