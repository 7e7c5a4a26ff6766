package cache

import (
	"context"
	"time"

	"gigmatch/internal/embeddings"
)

// NoOpCache is the fallback when Redis is not configured: every read is a
// miss and every write succeeds without storing anything, so the taxonomy
// is simply re-encoded per process.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetTaxonomyVectors(ctx context.Context, model string) ([]embeddings.Vector, error) {
	return nil, nil
}

func (c *NoOpCache) SetTaxonomyVectors(ctx context.Context, model string, vecs []embeddings.Vector, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
