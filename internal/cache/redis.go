package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gigmatch/internal/embeddings"
)

const taxonomyKeyPrefix = "taxonomy:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache client and verifies connectivity.
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetTaxonomyVectors(ctx context.Context, model string) ([]embeddings.Vector, error) {
	data, err := c.client.Get(ctx, taxonomyKeyPrefix+model).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var vecs []embeddings.Vector
	if err := json.Unmarshal(data, &vecs); err != nil {
		return nil, err
	}
	return vecs, nil
}

func (c *RedisCache) SetTaxonomyVectors(ctx context.Context, model string, vecs []embeddings.Vector, ttl time.Duration) error {
	data, err := json.Marshal(vecs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, taxonomyKeyPrefix+model, data, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
